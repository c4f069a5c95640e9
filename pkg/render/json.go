package render

import (
	"encoding/json"
	"io"

	"github.com/praetorian-inc/lgrep/pkg/types"
)

// JSON renders one JSON object per line.
type JSON struct {
	enc *json.Encoder
}

type jsonMatch struct {
	Type      string           `json:"type"`
	Origin    string           `json:"origin"`
	Line      uint64           `json:"line"`
	Text      string           `json:"text"`
	Segments  []types.Segment  `json:"segments"`
	Locations []types.Location `json:"locations"`
}

type jsonCount struct {
	Type   string `json:"type"`
	Origin string `json:"origin"`
	Count  int    `json:"count"`
}

type jsonFile struct {
	Type   string `json:"type"`
	Origin string `json:"origin"`
}

// NewJSON creates a JSON lines renderer.
func NewJSON(w io.Writer) *JSON {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSON{enc: enc}
}

func (j *JSON) Record(rec types.MatchRecord) error {
	return j.enc.Encode(jsonMatch{
		Type:      "match",
		Origin:    rec.Origin,
		Line:      rec.Index,
		Text:      rec.Text(),
		Segments:  rec.Segments,
		Locations: rec.Locations(),
	})
}

func (j *JSON) Count(origin string, n int) error {
	return j.enc.Encode(jsonCount{Type: "count", Origin: origin, Count: n})
}

func (j *JSON) File(origin string) error {
	return j.enc.Encode(jsonFile{Type: "file", Origin: origin})
}

func (j *JSON) Flush() error {
	return nil
}
