// Package scanner is the search engine: it drives a matcher over a lazy
// sequence of lines and yields annotated match records in input order.
package scanner

import (
	"iter"
	"strings"

	"github.com/praetorian-inc/lgrep/pkg/annotate"
	"github.com/praetorian-inc/lgrep/pkg/matcher"
	"github.com/praetorian-inc/lgrep/pkg/source"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// Core wraps the matcher for search operations. It keeps no state between
// lines, so one Core can search any number of sources in sequence.
type Core struct {
	config  types.SearchConfig
	matcher matcher.Matcher
	logger  DebugLogger
}

// NewCore validates cfg and compiles the pattern. An invalid regular
// expression fails here, before any source is read.
func NewCore(cfg types.SearchConfig, logger DebugLogger, opts ...matcher.Option) (*Core, error) {
	if logger == nil {
		logger = NoopLogger{}
	}

	logger.Log("compiling %s pattern %q (engine %s, ignore case %t)",
		cfg.Mode, cfg.Pattern, cfg.Engine, cfg.CaseInsensitive)
	m, err := matcher.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &Core{
		config:  cfg,
		matcher: m,
		logger:  logger,
	}, nil
}

// Config returns the configuration the core was built with.
func (c *Core) Config() types.SearchConfig {
	return c.config
}

// MatchLine returns the records for a single line: none when it does not
// match, otherwise one per distinct matched substring.
func (c *Core) MatchLine(line types.Line) []types.MatchRecord {
	found := c.matcher.FindMatches(line.Content)
	if len(found) == 0 {
		return nil
	}

	records := make([]types.MatchRecord, 0, len(found))
	for _, text := range found {
		records = append(records, types.MatchRecord{
			Origin:   line.Origin,
			Index:    line.Index,
			Segments: annotate.Annotate(line.Content, c.matcher.Finder(text)),
		})
	}
	return records
}

// Search lazily yields the match records of lines, in line order. A line
// source error is yielded once and ends the sequence.
func (c *Core) Search(lines iter.Seq2[types.Line, error]) iter.Seq2[types.MatchRecord, error] {
	return func(yield func(types.MatchRecord, error) bool) {
		for line, err := range lines {
			if err != nil {
				yield(types.MatchRecord{}, err)
				return
			}
			for _, rec := range c.MatchLine(line) {
				if !yield(rec, nil) {
					return
				}
			}
		}
	}
}

// Scan searches an in-memory string.
func (c *Core) Scan(content, origin string) (*ScanResult, error) {
	result := &ScanResult{Origin: origin}
	for rec, err := range c.Search(source.Lines(strings.NewReader(content), origin)) {
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// ScanBatch searches multiple in-memory items in order. It stops at the
// first item that fails to decode.
func (c *Core) ScanBatch(items []ContentItem) (*BatchScanResult, error) {
	batch := &BatchScanResult{}
	for _, item := range items {
		result, err := c.Scan(item.Content, item.Origin)
		if err != nil {
			return nil, err
		}
		batch.Results = append(batch.Results, *result)
		batch.Total += len(result.Records)
	}
	return batch, nil
}

// Close releases matcher resources.
func (c *Core) Close() error {
	if c.matcher != nil {
		return c.matcher.Close()
	}
	return nil
}
