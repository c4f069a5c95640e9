package render

import (
	"errors"
	"io"

	"github.com/praetorian-inc/lgrep/pkg/sarif"
	"github.com/praetorian-inc/lgrep/pkg/types"
)

// ErrSummaryUnsupported is returned when a summary is rendered as SARIF.
var ErrSummaryUnsupported = errors.New("sarif output does not support count or file summaries")

// SARIF collects records into a single report written by Flush.
type SARIF struct {
	w      io.Writer
	report *sarif.Report
	ruleID string
}

// NewSARIF creates a SARIF renderer for a search.
func NewSARIF(w io.Writer, cfg types.SearchConfig, version string) *SARIF {
	report := sarif.NewReport(version)
	report.AddPatternRule(cfg)
	return &SARIF{w: w, report: report, ruleID: sarif.RuleID(cfg.Mode)}
}

func (s *SARIF) Record(rec types.MatchRecord) error {
	s.report.AddRecord(s.ruleID, rec)
	return nil
}

func (s *SARIF) Count(string, int) error {
	return ErrSummaryUnsupported
}

func (s *SARIF) File(string) error {
	return ErrSummaryUnsupported
}

// Flush writes the report. It is written even when nothing matched.
func (s *SARIF) Flush() error {
	data, err := s.report.ToJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = s.w.Write(data)
	return err
}
