package types

import "strings"

// Segment is a contiguous run of a line's text, tagged as matched or plain.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// MatchRecord is one annotated result: a line split into segments together
// with the origin and 1-based index of the line.
type MatchRecord struct {
	Origin   string    `json:"origin"`
	Index    uint64    `json:"line"`
	Segments []Segment `json:"segments"`
}

// Text reassembles the original line content.
func (r MatchRecord) Text() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// MatchedText returns the text of every matched segment in order.
func (r MatchRecord) MatchedText() []string {
	var out []string
	for _, s := range r.Segments {
		if s.Matched {
			out = append(out, s.Text)
		}
	}
	return out
}

// Spans returns the byte range of each matched segment within the line.
func (r MatchRecord) Spans() []OffsetSpan {
	var spans []OffsetSpan
	var pos int64
	for _, s := range r.Segments {
		end := pos + int64(len(s.Text))
		if s.Matched {
			spans = append(spans, OffsetSpan{Start: pos, End: end})
		}
		pos = end
	}
	return spans
}

// Locations returns the line:column range of each matched segment.
// Columns are 1-based and count runes.
func (r MatchRecord) Locations() []Location {
	line := r.Text()
	var locs []Location
	for _, span := range r.Spans() {
		locs = append(locs, Location{
			Offset: span,
			Source: SourceSpan{
				Start: SourcePoint{Line: int(r.Index), Column: ColumnAt(line, int(span.Start))},
				End:   SourcePoint{Line: int(r.Index), Column: ColumnAt(line, int(span.End))},
			},
		})
	}
	return locs
}
