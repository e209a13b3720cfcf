// Package engine ties the analysis pipeline together: tokenizing, parsing,
// feature detection, explanation generation and memory estimation run over
// one source text per call. Every call owns private state, so Analyze is
// safe to invoke from concurrent requests as long as each gets its own
// Report.
package engine

import (
	"github.com/viktorexe/codeanatomy/analyze"
	"github.com/viktorexe/codeanatomy/cparse"
	"github.com/viktorexe/codeanatomy/explain"
	"github.com/viktorexe/codeanatomy/memsim"
)

// ParseResult is the structural-parse outcome. On failure Error carries the
// diagnostic and Tree is nil; parsing never panics.
type ParseResult struct {
	Success bool         `json:"success"`
	Tree    *cparse.Node `json:"tree,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Report is the full analysis result for one source text.
type Report struct {
	Parse       ParseResult             `json:"parse"`
	Validation  cparse.Validation       `json:"validation"`
	Features    []analyze.FeatureRecord `json:"features"`
	Explanation explain.Explanation     `json:"explanation"`
	Memory      memsim.Snapshot         `json:"memory"`
	MemoryError string                  `json:"memoryError,omitempty"`
}

// Analyze runs the whole pipeline with the default simulator constants.
func Analyze(source string) *Report {
	return AnalyzeWithConfig(source, memsim.DefaultConfig())
}

// AnalyzeWithConfig runs the whole pipeline. The parser and the feature
// detector see the same raw text independently: a parse failure still
// yields features, explanation and a memory estimate, since detection does
// not depend on the tree. The syntax validation is advisory and never
// blocks anything.
func AnalyzeWithConfig(source string, cfg memsim.Config) *Report {
	report := &Report{
		Validation: cparse.ValidateSyntax(source),
	}

	tree, err := cparse.Parse(source)
	if err != nil {
		report.Parse = ParseResult{Success: false, Error: err.Error()}
	} else {
		report.Parse = ParseResult{Success: true, Tree: tree}
	}

	report.Features = analyze.Detect(source)
	report.Explanation = explain.Explain(report.Features)

	snapshot, err := memsim.Estimate(report.Features, cfg)
	report.Memory = snapshot
	if err != nil {
		report.MemoryError = err.Error()
	}
	return report
}
