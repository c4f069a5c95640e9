package types

import "unicode/utf8"

// ColumnAt converts a byte offset within a single line to a 1-based column
// counted in runes. Offsets past the end clamp to one past the last rune.
func ColumnAt(line string, byteOffset int) int {
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	if byteOffset < 0 {
		byteOffset = 0
	}
	return utf8.RuneCountInString(line[:byteOffset]) + 1
}
