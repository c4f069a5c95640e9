package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// Colors names the attributes of each styled element, e.g. "bold,red".
type Colors struct {
	Origin string `yaml:"origin"`
	Line   string `yaml:"line"`
	Match  string `yaml:"match"`
}

// DefaultColors matches the usual grep palette.
func DefaultColors() Colors {
	return Colors{
		Origin: "magenta",
		Line:   "green",
		Match:  "bold,red",
	}
}

// styles holds color formatters for text output
type styles struct {
	origin *color.Color
	line   *color.Color
	match  *color.Color
	sep    *color.Color
}

// newStyles creates color formatters from c. enabled=false strips all
// escapes, which covers --color=never and NO_COLOR.
func newStyles(c Colors, enabled bool) *styles {
	defaults := DefaultColors()
	s := &styles{
		origin: newColor(c.Origin, defaults.Origin),
		line:   newColor(c.Line, defaults.Line),
		match:  newColor(c.Match, defaults.Match),
		sep:    color.New(color.FgCyan),
	}

	for _, style := range []*color.Color{s.origin, s.line, s.match, s.sep} {
		if enabled {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
	}
	return s
}

var attributes = map[string]color.Attribute{
	"bold":      color.Bold,
	"faint":     color.Faint,
	"italic":    color.Italic,
	"underline": color.Underline,
	"black":     color.FgBlack,
	"red":       color.FgRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"blue":      color.FgBlue,
	"magenta":   color.FgMagenta,
	"cyan":      color.FgCyan,
	"white":     color.FgWhite,
	"hired":     color.FgHiRed,
	"higreen":   color.FgHiGreen,
	"hiyellow":  color.FgHiYellow,
	"hiblue":    color.FgHiBlue,
	"himagenta": color.FgHiMagenta,
	"hicyan":    color.FgHiCyan,
	"hiwhite":   color.FgHiWhite,
}

// ParseColor checks a comma-separated attribute list.
func ParseColor(value string) ([]color.Attribute, error) {
	var attrs []color.Attribute
	for _, name := range strings.Split(value, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		attr, ok := attributes[name]
		if !ok {
			return nil, fmt.Errorf("unknown color attribute %q", name)
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func newColor(value, fallback string) *color.Color {
	attrs, err := ParseColor(value)
	if err != nil || len(attrs) == 0 {
		attrs, _ = ParseColor(fallback)
	}
	return color.New(attrs...)
}

// Text renders records as "origin:index:line" with matched spans styled.
type Text struct {
	w      *bufio.Writer
	opts   Options
	styles *styles
}

// NewText creates a text renderer.
func NewText(w io.Writer, opts Options) *Text {
	return &Text{
		w:      bufio.NewWriter(w),
		opts:   opts,
		styles: newStyles(opts.Colors, opts.Color),
	}
}

// Record writes one record. Output is flushed per line so streamed input
// shows results as they are found.
func (t *Text) Record(rec types.MatchRecord) error {
	if t.opts.ShowOrigin {
		t.prefix(t.styles.origin, rec.Origin)
	}
	if t.opts.ShowLineNumbers {
		t.prefix(t.styles.line, strconv.FormatUint(rec.Index, 10))
	}
	for _, seg := range rec.Segments {
		if seg.Matched {
			t.w.WriteString(t.styles.match.Sprint(seg.Text))
		} else {
			t.w.WriteString(seg.Text)
		}
	}
	t.w.WriteByte('\n')
	return t.w.Flush()
}

// Count writes the number of matching lines of a source.
func (t *Text) Count(origin string, n int) error {
	if t.opts.ShowOrigin {
		t.prefix(t.styles.origin, origin)
	}
	fmt.Fprintf(t.w, "%d\n", n)
	return t.w.Flush()
}

// File writes the origin of a source that matched.
func (t *Text) File(origin string) error {
	t.w.WriteString(t.styles.origin.Sprint(origin))
	t.w.WriteByte('\n')
	return t.w.Flush()
}

// Flush writes any buffered output.
func (t *Text) Flush() error {
	return t.w.Flush()
}

func (t *Text) prefix(c *color.Color, text string) {
	t.w.WriteString(c.Sprint(text))
	t.w.WriteString(t.styles.sep.Sprint(":"))
}
