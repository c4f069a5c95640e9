// Package render writes match records to an output sink as colored text,
// JSON lines or SARIF.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/praetorian-inc/lgrep/pkg/types"
	"golang.org/x/term"
)

// Format names accepted by New.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Renderer writes search output. Record is called for each match record,
// Count and File for the -c and -l summaries. Flush writes anything
// buffered once the run is over.
type Renderer interface {
	Record(rec types.MatchRecord) error
	Count(origin string, n int) error
	File(origin string) error
	Flush() error
}

// Options controls prefixes and styling.
type Options struct {
	ShowOrigin      bool
	ShowLineNumbers bool
	Color           bool
	Colors          Colors

	// Search and Version are recorded in SARIF reports.
	Search  types.SearchConfig
	Version string
}

// New returns the renderer for format.
func New(format string, w io.Writer, opts Options) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewText(w, opts), nil
	case FormatJSON:
		return NewJSON(w), nil
	case FormatSARIF:
		return NewSARIF(w, opts.Search, opts.Version), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// ColorEnabled resolves a --color mode for w. In auto mode colors are used
// only when w is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(interface{ Fd() uintptr })
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid color mode: %s (want auto, always or never)", mode)
	}
}
