// Package annotate splits a line into plain and matched segments.
package annotate

import (
	"strings"

	"github.com/praetorian-inc/lgrep/pkg/types"
)

// Finder locates the first occurrence of a needle in s and returns its byte
// range [start, end). It returns (-1, -1) when there is no occurrence.
type Finder func(s string) (start, end int)

// Exact finds byte-identical occurrences of needle.
func Exact(needle string) Finder {
	return func(s string) (int, int) {
		i := strings.Index(s, needle)
		if i < 0 {
			return -1, -1
		}
		return i, i + len(needle)
	}
}

// Fold finds occurrences of needle under Unicode simple case folding. The
// returned range is measured in s, so it may differ in length from needle.
func Fold(needle string) Finder {
	return func(s string) (int, int) {
		return IndexFold(s, needle)
	}
}

// Annotate scans line left to right for non-overlapping occurrences located
// by find and returns the alternating segment sequence. Concatenating the
// segment texts yields line. Empty plain segments are never emitted and a
// line without any occurrence comes back as a single plain segment.
func Annotate(line string, find Finder) []types.Segment {
	var segs []types.Segment
	cursor := 0
	for cursor < len(line) {
		start, end := find(line[cursor:])
		if start < 0 || end <= start {
			break
		}
		start += cursor
		end += cursor
		if start > cursor {
			segs = append(segs, types.Segment{Text: line[cursor:start]})
		}
		segs = append(segs, types.Segment{Text: line[start:end], Matched: true})
		cursor = end
	}
	if cursor < len(line) || len(segs) == 0 {
		segs = append(segs, types.Segment{Text: line[cursor:]})
	}
	return segs
}
