package matcher

import (
	"github.com/praetorian-inc/lgrep/pkg/annotate"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// LiteralMatcher matches the pattern as an exact substring. A matching line
// yields a single matched substring, and every occurrence of the pattern is
// highlighted when the line is annotated.
type LiteralMatcher struct {
	pattern string
	find    annotate.Finder
}

// NewLiteral creates a literal matcher. With caseInsensitive, containment is
// tested under Unicode case folding and matched text keeps the line's casing.
func NewLiteral(pattern string, caseInsensitive bool) (*LiteralMatcher, error) {
	if pattern == "" {
		return nil, types.ErrEmptyPattern
	}

	find := annotate.Exact(pattern)
	if caseInsensitive {
		find = annotate.Fold(pattern)
	}
	return &LiteralMatcher{
		pattern: pattern,
		find:    find,
	}, nil
}

// FindMatches returns the first occurrence of the pattern, sliced from line.
func (m *LiteralMatcher) FindMatches(line string) []string {
	start, end := m.find(line)
	if start < 0 {
		return nil
	}
	return []string{line[start:end]}
}

// Finder locates every occurrence of the pattern, whatever its casing.
func (m *LiteralMatcher) Finder(string) annotate.Finder {
	return m.find
}

// Close is a no-op.
func (m *LiteralMatcher) Close() error {
	return nil
}
