// Package lgrep provides line-oriented pattern search as a library.
//
// A Searcher matches a literal substring or a regular expression against
// lines and returns match records whose segments mark every matched span.
//
// # Basic Usage
//
//	searcher, err := lgrep.NewSearcher("hello", lgrep.WithIgnoreCase())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer searcher.Close()
//
//	records, err := searcher.SearchString("Hello HELLO\nbye", "greeting.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range records {
//	    fmt.Printf("%s:%d: %v\n", rec.Origin, rec.Index, rec.MatchedText())
//	}
//
// # Streaming
//
// SearchReader and SearchFiles are lazy: lines are read only as records
// are consumed, so they work on unbounded input.
//
//	for rec, err := range searcher.SearchReader(os.Stdin, "stdin") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec.Text())
//	}
package lgrep

import (
	"context"
	"io"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/praetorian-inc/lgrep/pkg/matcher"
	"github.com/praetorian-inc/lgrep/pkg/scanner"
	"github.com/praetorian-inc/lgrep/pkg/source"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/lgrep" without subpackages.
type (
	// MatchRecord is one annotated matching line.
	MatchRecord = types.MatchRecord

	// Segment is a plain or matched run of a line.
	Segment = types.Segment

	// Line is one line of input with its origin and 1-based index.
	Line = types.Line

	// InvalidPatternSyntaxError reports a regular expression that does not compile.
	InvalidPatternSyntaxError = types.InvalidPatternSyntaxError

	// SourceError reports an input that could not be opened, read or decoded.
	SourceError = types.SourceError

	// ContentItem is an in-memory text and its origin label.
	ContentItem = scanner.ContentItem

	// BatchScanResult holds per-item records of SearchBatch.
	BatchScanResult = scanner.BatchScanResult
)

// ErrEmptyPattern is returned by NewSearcher for an empty pattern.
var ErrEmptyPattern = types.ErrEmptyPattern

// Searcher searches lines for one pattern. It is safe for concurrent use;
// Close waits for searches in progress, including lazy iterations being
// consumed. Do not call Searcher methods from inside such an iteration while
// another goroutine may be closing it.
type Searcher struct {
	core   *scanner.Core
	config *searcherConfig
	mu     sync.RWMutex
}

// searcherConfig holds searcher configuration.
type searcherConfig struct {
	search       types.SearchConfig
	matchTimeout time.Duration
	enum         source.Config
	maxCount     int
}

// Option configures a Searcher.
type Option func(*searcherConfig)

// WithRegex interprets the pattern as a regular expression.
func WithRegex() Option {
	return func(c *searcherConfig) {
		c.search.Mode = types.ModeRegex
	}
}

// WithBacktracking interprets the pattern as a regular expression for the
// backtracking engine, which supports lookaround and backreferences.
func WithBacktracking() Option {
	return func(c *searcherConfig) {
		c.search.Mode = types.ModeRegex
		c.search.Engine = types.EngineBacktrack
	}
}

// WithIgnoreCase matches regardless of case.
func WithIgnoreCase() Option {
	return func(c *searcherConfig) {
		c.search.CaseInsensitive = true
	}
}

// WithMatchTimeout bounds the time the backtracking engine may spend on one line.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *searcherConfig) {
		c.matchTimeout = d
	}
}

// WithRecursive lets SearchFiles descend into directories.
func WithRecursive() Option {
	return func(c *searcherConfig) {
		c.enum.Recursive = true
	}
}

// WithExtract enables text extraction for SearchFiles
// (comma-separated: pdf,docx,xlsx,zip,7z or "all").
func WithExtract(list string) Option {
	return func(c *searcherConfig) {
		c.enum.ExtractArchives = list
	}
}

// WithStdin sets the reader SearchFiles uses for the "-" path.
func WithStdin(r io.Reader) Option {
	return func(c *searcherConfig) {
		c.enum.Stdin = r
	}
}

// WithMaxCount stops reading a source after n matching lines.
func WithMaxCount(n int) Option {
	return func(c *searcherConfig) {
		c.maxCount = n
	}
}

// NewSearcher creates a Searcher for pattern.
//
// Defaults:
//   - literal substring matching, case-sensitive
//   - RE2 engine when WithRegex is given
//   - 5s per-line timeout for the backtracking engine
//
// A regular expression that does not compile is reported here as
// *InvalidPatternSyntaxError.
func NewSearcher(pattern string, opts ...Option) (*Searcher, error) {
	config := &searcherConfig{
		search:       types.SearchConfig{Pattern: pattern},
		matchTimeout: matcher.DefaultMatchTimeout,
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := source.ValidateExtract(config.enum.ExtractArchives); err != nil {
		return nil, err
	}

	core, err := scanner.NewCore(config.search, nil, matcher.WithMatchTimeout(config.matchTimeout))
	if err != nil {
		return nil, err
	}

	return &Searcher{
		core:   core,
		config: config,
	}, nil
}

// SearchString searches in-memory content, labelling records with origin.
func (s *Searcher) SearchString(content, origin string) ([]MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, err := s.core.Scan(content, origin)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// SearchLine returns the records of a single line.
func (s *Searcher) SearchLine(line Line) []MatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.core.MatchLine(line)
}

// SearchBatch searches several in-memory items in order. It stops at the
// first item that is not valid UTF-8.
func (s *Searcher) SearchBatch(items []ContentItem) (*BatchScanResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.core.ScanBatch(items)
}

// SearchReader lazily searches r line by line.
func (s *Searcher) SearchReader(r io.Reader, origin string) iter.Seq2[MatchRecord, error] {
	return s.locked(s.core.Search(source.Lines(r, origin)))
}

// SearchFiles lazily searches paths in order. "-" reads the WithStdin
// reader, or nothing when none was set. The first source error ends the
// sequence.
func (s *Searcher) SearchFiles(ctx context.Context, paths ...string) iter.Seq2[MatchRecord, error] {
	enumCfg := s.config.enum
	if enumCfg.Stdin == nil {
		enumCfg.Stdin = strings.NewReader("")
	}
	enumerator := source.NewEnumerator(enumCfg)
	return s.locked(s.core.SearchSources(enumerator.Sources(ctx, paths), s.config.maxCount))
}

// locked holds the read lock for as long as seq is being iterated.
func (s *Searcher) locked(seq iter.Seq2[MatchRecord, error]) iter.Seq2[MatchRecord, error] {
	return func(yield func(MatchRecord, error) bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		seq(yield)
	}
}

// Config returns the search configuration.
func (s *Searcher) Config() types.SearchConfig {
	return s.core.Config()
}

// Close releases searcher resources.
func (s *Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.core.Close()
}
