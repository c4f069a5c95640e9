package annotate

import (
	"unicode"
	"unicode/utf8"
)

// IndexFold returns the byte range of the first occurrence of needle in s,
// comparing rune by rune under Unicode simple case folding. It returns
// (-1, -1) if needle is empty or absent.
func IndexFold(s, needle string) (start, end int) {
	if needle == "" {
		return -1, -1
	}
	for i := 0; i < len(s); {
		if n, ok := hasPrefixFold(s[i:], needle); ok {
			return i, i + n
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1, -1
}

// hasPrefixFold reports whether s starts with needle under case folding and
// how many bytes of s the prefix spans.
func hasPrefixFold(s, needle string) (int, bool) {
	j := 0
	for _, want := range needle {
		if j >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[j:])
		if !equalFoldRune(got, want) {
			return 0, false
		}
		j += size
	}
	return j, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
