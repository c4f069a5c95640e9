// Package prefilter gates line matching on literal keywords that any match
// of the pattern must contain, using Aho-Corasick for the keyword scan.
package prefilter

import (
	"regexp/syntax"

	"github.com/cloudflare/ahocorasick"
)

// Prefilter rejects lines that cannot match without running the full matcher.
// A nil *Prefilter accepts every line.
type Prefilter struct {
	matcher    *ahocorasick.Matcher
	keywords   []string
	requireAll bool
}

// New creates a prefilter from keywords. With requireAll every keyword must
// be present for a line to pass, otherwise any one of them suffices.
// Returns nil if no non-empty keyword remains.
func New(keywords []string, requireAll bool) *Prefilter {
	seen := make(map[string]bool)
	var uniq []string
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		uniq = append(uniq, kw)
	}
	if len(uniq) == 0 {
		return nil
	}

	return &Prefilter{
		matcher:    ahocorasick.NewStringMatcher(uniq),
		keywords:   uniq,
		requireAll: requireAll,
	}
}

// ForRegex derives a prefilter from a Go (RE2) regular expression. It returns
// nil when the pattern does not parse or has no case-sensitive literal every
// match is guaranteed to contain.
func ForRegex(pattern string) *Prefilter {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil
	}
	keywords, requireAll, ok := requiredLiterals(re)
	if !ok {
		return nil
	}
	return New(keywords, requireAll)
}

// MayMatch reports whether line contains the keywords a match needs.
func (pf *Prefilter) MayMatch(line string) bool {
	if pf == nil {
		return true
	}

	hits := pf.matcher.MatchThreadSafe([]byte(line))
	if !pf.requireAll {
		return len(hits) > 0
	}

	found := make(map[int]bool, len(hits))
	for _, hit := range hits {
		found[hit] = true
	}
	return len(found) == len(pf.keywords)
}

// requiredLiterals walks the parsed expression and collects literals that
// must occur in every match. requireAll distinguishes a conjunction (concat)
// from a disjunction (alternation).
func requiredLiterals(re *syntax.Regexp) (keywords []string, requireAll bool, ok bool) {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return nil, false, false
		}
		return []string{string(re.Rune)}, true, true

	case syntax.OpCapture, syntax.OpPlus:
		return requiredLiterals(re.Sub[0])

	case syntax.OpRepeat:
		if re.Min < 1 {
			return nil, false, false
		}
		return requiredLiterals(re.Sub[0])

	case syntax.OpConcat:
		for _, sub := range re.Sub {
			kws, all, ok := requiredLiterals(sub)
			if ok && all {
				keywords = append(keywords, kws...)
			}
		}
		return keywords, true, len(keywords) > 0

	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			kws, all, ok := requiredLiterals(sub)
			if !ok {
				return nil, false, false
			}
			if all {
				// Any one of a branch's required literals stands for it.
				keywords = append(keywords, longest(kws))
			} else {
				keywords = append(keywords, kws...)
			}
		}
		return keywords, false, true
	}

	return nil, false, false
}

// longest picks a representative keyword for one alternation branch.
func longest(kws []string) string {
	best := kws[0]
	for _, kw := range kws[1:] {
		if len(kw) > len(best) {
			best = kw
		}
	}
	return best
}
