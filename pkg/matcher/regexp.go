package matcher

import (
	"regexp"

	"github.com/praetorian-inc/lgrep/pkg/annotate"
	"github.com/praetorian-inc/lgrep/pkg/prefilter"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// RegexpMatcher implements Matcher with Go's RE2 engine: leftmost-first,
// non-overlapping, linear time. Zero-width matches are discarded and matched
// substrings are deduplicated by text.
type RegexpMatcher struct {
	re        *regexp.Regexp
	prefilter *prefilter.Prefilter
}

// NewRegexp compiles pattern. Case-insensitivity uses the engine's (?i) flag.
func NewRegexp(pattern string, caseInsensitive bool, opts ...Option) (*RegexpMatcher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newRegexp(pattern, caseInsensitive, o)
}

func newRegexp(pattern string, caseInsensitive bool, o options) (*RegexpMatcher, error) {
	if pattern == "" {
		return nil, types.ErrEmptyPattern
	}

	expr := pattern
	if caseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &types.InvalidPatternSyntaxError{Pattern: pattern, Err: err}
	}

	m := &RegexpMatcher{re: re}
	if o.prefilter {
		m.prefilter = prefilter.ForRegex(expr)
	}
	return m, nil
}

// FindMatches returns the distinct non-empty matched substrings of line.
func (m *RegexpMatcher) FindMatches(line string) []string {
	if !m.prefilter.MayMatch(line) {
		return nil
	}

	var out []string
	dedup := deduplicator{}
	for _, loc := range m.re.FindAllStringIndex(line, -1) {
		if loc[1] <= loc[0] {
			continue
		}
		text := line[loc[0]:loc[1]]
		if dedup.add(text) {
			out = append(out, text)
		}
	}
	return out
}

// Finder locates byte-identical occurrences of matched.
func (m *RegexpMatcher) Finder(matched string) annotate.Finder {
	return annotate.Exact(matched)
}

// String returns the compiled expression.
func (m *RegexpMatcher) String() string {
	return m.re.String()
}

// Close is a no-op.
func (m *RegexpMatcher) Close() error {
	return nil
}
