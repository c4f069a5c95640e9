package scanner

import "github.com/praetorian-inc/lgrep/pkg/types"

// ContentItem is an in-memory text to search.
type ContentItem struct {
	Origin  string `json:"origin"`  // label rendered in front of matching lines
	Content string `json:"content"` // text to search, split on '\n'
}

// ScanResult holds the records produced for one origin.
type ScanResult struct {
	Origin  string              `json:"origin"`
	Records []types.MatchRecord `json:"records"`
}

// BatchScanResult holds the results of ScanBatch in input order.
type BatchScanResult struct {
	Results []ScanResult `json:"results"`
	Total   int          `json:"total"`
}

// DebugLogger receives verbose diagnostics.
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
