package scanner

import (
	"iter"

	"github.com/praetorian-inc/lgrep/pkg/source"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// SearchSource searches one source. With maxCount > 0 reading stops after
// maxCount matching lines.
func (c *Core) SearchSource(src source.Source, maxCount int) iter.Seq2[types.MatchRecord, error] {
	return func(yield func(types.MatchRecord, error) bool) {
		c.logger.Log("searching %s", src.Origin())

		matched := 0
		for line, err := range src.Lines() {
			if err != nil {
				yield(types.MatchRecord{}, err)
				return
			}
			records := c.MatchLine(line)
			if len(records) == 0 {
				continue
			}
			for _, rec := range records {
				if !yield(rec, nil) {
					return
				}
			}
			if matched++; maxCount > 0 && matched >= maxCount {
				return
			}
		}
	}
}

// SearchSources searches sources strictly in sequence. The first source
// error is yielded and ends the run.
func (c *Core) SearchSources(sources iter.Seq2[source.Source, error], maxCount int) iter.Seq2[types.MatchRecord, error] {
	return func(yield func(types.MatchRecord, error) bool) {
		for src, err := range sources {
			if err != nil {
				yield(types.MatchRecord{}, err)
				return
			}
			for rec, err := range c.SearchSource(src, maxCount) {
				if !yield(rec, err) || err != nil {
					return
				}
			}
		}
	}
}
