// Package sarif builds SARIF 2.1.0 reports of pattern matches, so search
// results can be uploaded to code-scanning dashboards.
package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "ctxgrep"
	RuleID    = "ctxgrep.match"
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

// Result represents a single matched line
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

// PhysicalLocation specifies the hit and the block around it.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
	ContextRegion    *Region          `json:"contextRegion,omitempty"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies a line/column range. Columns count Unicode code points
// and are 1-based.
type Region struct {
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn,omitempty"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn,omitempty"`
	Snippet     *Snippet `json:"snippet,omitempty"`
}

// Snippet contains source text
type Snippet struct {
	Text string `json:"text"`
}

// Finding is one matched line and the block displayed around it. Lines
// are 1-based.
type Finding struct {
	Path        string
	Line        int
	StartColumn int
	EndColumn   int
	Match       string

	ContextStart int
	ContextEnd   int
	Context      string
}

// NewReport creates a report for a search of pattern.
func NewReport(toolVersion, pattern string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules: []Rule{{
							ID:               RuleID,
							Name:             "PatternMatch",
							ShortDescription: ShortDescription{Text: pattern},
						}},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddResult adds a finding to the report
func (r *Report) AddResult(f Finding) {
	region := Region{
		StartLine:   f.Line,
		StartColumn: f.StartColumn,
		EndLine:     f.Line,
		EndColumn:   f.EndColumn,
	}
	if f.Match != "" {
		region.Snippet = &Snippet{Text: f.Match}
	}

	loc := PhysicalLocation{
		ArtifactLocation: ArtifactLocation{URI: formatFileURI(f.Path)},
		Region:           region,
	}
	if f.ContextStart > 0 {
		loc.ContextRegion = &Region{
			StartLine: f.ContextStart,
			EndLine:   f.ContextEnd,
			Snippet:   &Snippet{Text: f.Context},
		}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:    RuleID,
		Level:     "note",
		Message:   Message{Text: "pattern matched"},
		Locations: []Location{{PhysicalLocation: loc}},
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
