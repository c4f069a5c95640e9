package matcher

import (
	"log"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/lgrep/pkg/annotate"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// BacktrackMatcher implements Matcher using regexp2 for Perl-style features
// such as lookaround and backreferences. Each line is matched under a timeout
// to contain catastrophic backtracking.
//
// regexp2 reports positions in runes, so matched text is taken from the
// match itself rather than by slicing the line with its offsets.
type BacktrackMatcher struct {
	re *regexp2.Regexp
}

// NewBacktrack compiles pattern with regexp2.
func NewBacktrack(pattern string, caseInsensitive bool, opts ...Option) (*BacktrackMatcher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newBacktrack(pattern, caseInsensitive, o)
}

func newBacktrack(pattern string, caseInsensitive bool, o options) (*BacktrackMatcher, error) {
	if pattern == "" {
		return nil, types.ErrEmptyPattern
	}

	var fold regexp2.RegexOptions
	if caseInsensitive {
		fold = regexp2.IgnoreCase
	}

	// Try RE2-compatible syntax first, then the full Perl-compatible dialect
	re, err := regexp2.Compile(pattern, regexp2.RE2|fold)
	if err != nil {
		re, err = regexp2.Compile(pattern, regexp2.None|fold)
		if err != nil {
			return nil, &types.InvalidPatternSyntaxError{Pattern: pattern, Err: err}
		}
	}
	if o.matchTimeout > 0 {
		re.MatchTimeout = o.matchTimeout
	}

	return &BacktrackMatcher{re: re}, nil
}

// FindMatches returns the distinct non-empty matched substrings of line.
// A match error (typically a timeout) is logged and ends the scan of that
// line, keeping the matches found before it.
func (m *BacktrackMatcher) FindMatches(line string) []string {
	var out []string
	dedup := deduplicator{}

	match, err := m.re.FindStringMatch(line)
	for err == nil && match != nil {
		if text := match.String(); text != "" && dedup.add(text) {
			out = append(out, text)
		}
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		if strings.Contains(err.Error(), "match timeout") {
			log.Printf("[warn] pattern %q timed out on line (skipping rest of line)", m.re.String())
		} else {
			log.Printf("[warn] pattern %q match error (skipping rest of line): %v", m.re.String(), err)
		}
	}
	return out
}

// Finder locates byte-identical occurrences of matched.
func (m *BacktrackMatcher) Finder(matched string) annotate.Finder {
	return annotate.Exact(matched)
}

// Close is a no-op.
func (m *BacktrackMatcher) Close() error {
	return nil
}
