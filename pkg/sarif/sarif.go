// Package sarif builds SARIF 2.1.0 reports from match records.
package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/lgrep/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "lgrep"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes the searched pattern.
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result is one match record; each matched span is a location.
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range
type Region struct {
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Snippet     *Snippet `json:"snippet,omitempty"`
}

// Snippet contains the matched text
type Snippet struct {
	Text string `json:"text"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport(toolVersion string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules:   []Rule{},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// RuleID returns the rule identifier used for a search mode.
func RuleID(mode types.Mode) string {
	return ToolName + "." + mode.String()
}

// AddPatternRule records the searched pattern as the run's only rule.
func (r *Report) AddPatternRule(cfg types.SearchConfig) {
	desc := fmt.Sprintf("%s pattern %q", cfg.Mode, cfg.Pattern)
	if cfg.CaseInsensitive {
		desc += " (case-insensitive)"
	}
	r.Runs[0].Tool.Driver.Rules = append(r.Runs[0].Tool.Driver.Rules, Rule{
		ID:               RuleID(cfg.Mode),
		Name:             cfg.Pattern,
		ShortDescription: ShortDescription{Text: desc},
	})
}

// AddRecord adds a match record under ruleID.
func (r *Report) AddRecord(ruleID string, rec types.MatchRecord) {
	uri := formatFileURI(rec.Origin)
	matched := rec.MatchedText()

	locations := make([]Location, 0, len(matched))
	for i, loc := range rec.Locations() {
		locations = append(locations, Location{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: uri},
				Region: Region{
					StartLine:   loc.Source.Start.Line,
					StartColumn: loc.Source.Start.Column,
					EndLine:     loc.Source.End.Line,
					EndColumn:   loc.Source.End.Column,
					Snippet:     &Snippet{Text: matched[i]},
				},
			},
		})
	}

	text := rec.Text()
	if len(matched) > 0 {
		text = fmt.Sprintf("matched %q", matched[0])
	}
	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:    ruleID,
		Level:     "note",
		Message:   Message{Text: text},
		Locations: locations,
	})
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
