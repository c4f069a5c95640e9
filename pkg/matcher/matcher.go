// Package matcher decides whether and where a pattern occurs in a line.
//
// Two strategies implement Matcher: LiteralMatcher for exact substrings and
// the regular expression matchers (RegexpMatcher on Go's RE2 engine,
// BacktrackMatcher on regexp2). The strategy is chosen once by New.
package matcher

import (
	"fmt"

	"github.com/praetorian-inc/lgrep/pkg/annotate"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// Matcher finds the matched substrings of single lines.
type Matcher interface {
	// FindMatches returns every distinct matched substring of line, in the
	// order first encountered. An empty result means the line does not match.
	FindMatches(line string) []string

	// Finder locates the occurrences of a substring returned by FindMatches
	// so they can be highlighted.
	Finder(matched string) annotate.Finder

	// Close releases resources.
	Close() error
}

// New validates cfg and creates the matcher for its mode and engine.
// Regular expressions are compiled here; a syntax error is returned as
// *types.InvalidPatternSyntaxError.
func New(cfg types.SearchConfig, opts ...Option) (Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	switch cfg.Mode {
	case types.ModeLiteral:
		return NewLiteral(cfg.Pattern, cfg.CaseInsensitive)
	case types.ModeRegex:
		if cfg.Engine == types.EngineBacktrack {
			return newBacktrack(cfg.Pattern, cfg.CaseInsensitive, o)
		}
		return newRegexp(cfg.Pattern, cfg.CaseInsensitive, o)
	default:
		return nil, fmt.Errorf("unsupported search mode: %s", cfg.Mode)
	}
}
