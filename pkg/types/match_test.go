package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() MatchRecord {
	return MatchRecord{
		Origin: "a.txt",
		Index:  3,
		Segments: []Segment{
			{Text: "say "},
			{Text: "héllo", Matched: true},
			{Text: " and "},
			{Text: "héllo", Matched: true},
		},
	}
}

func TestMatchRecord_Text(t *testing.T) {
	assert.Equal(t, "say héllo and héllo", sampleRecord().Text())
	assert.Equal(t, "", MatchRecord{}.Text())
}

func TestMatchRecord_MatchedText(t *testing.T) {
	assert.Equal(t, []string{"héllo", "héllo"}, sampleRecord().MatchedText())
}

func TestMatchRecord_Spans(t *testing.T) {
	spans := sampleRecord().Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, OffsetSpan{Start: 4, End: 10}, spans[0])
	assert.Equal(t, OffsetSpan{Start: 15, End: 21}, spans[1])
}

func TestMatchRecord_Locations(t *testing.T) {
	locs := sampleRecord().Locations()
	require.Len(t, locs, 2)
	assert.Equal(t, SourcePoint{Line: 3, Column: 5}, locs[0].Source.Start)
	assert.Equal(t, SourcePoint{Line: 3, Column: 10}, locs[0].Source.End)
	assert.Equal(t, SourcePoint{Line: 3, Column: 15}, locs[1].Source.Start)
}

func TestMatchRecord_JSON(t *testing.T) {
	data, err := json.Marshal(MatchRecord{
		Origin:   "stdin",
		Index:    1,
		Segments: []Segment{{Text: "ab", Matched: true}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"origin":"stdin","line":1,"segments":[{"text":"ab","matched":true}]}`, string(data))
}
