package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexFold(t *testing.T) {
	tests := []struct {
		name      string
		s         string
		needle    string
		wantStart int
		wantEnd   int
	}{
		{name: "same case", s: "hello world", needle: "world", wantStart: 6, wantEnd: 11},
		{name: "upper in haystack", s: "HELLO", needle: "hello", wantStart: 0, wantEnd: 5},
		{name: "upper in needle", s: "say hello", needle: "HeLLo", wantStart: 4, wantEnd: 9},
		{name: "absent", s: "hello", needle: "bye", wantStart: -1, wantEnd: -1},
		{name: "empty needle", s: "hello", needle: "", wantStart: -1, wantEnd: -1},
		{name: "needle longer than haystack", s: "he", needle: "hello", wantStart: -1, wantEnd: -1},
		{name: "accented", s: "ÉCOLE école", needle: "école", wantStart: 0, wantEnd: 6},
		{name: "kelvin sign", s: "\u212a", needle: "k", wantStart: 0, wantEnd: 3},
		{name: "greek sigma forms", s: "ΣΑΣ", needle: "σας", wantStart: 0, wantEnd: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := IndexFold(tt.s, tt.needle)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestEqualFoldRune(t *testing.T) {
	assert.True(t, equalFoldRune('a', 'A'))
	assert.True(t, equalFoldRune('\u212a', 'k'))
	assert.True(t, equalFoldRune('ς', 'Σ'))
	assert.False(t, equalFoldRune('a', 'b'))
}
