// Copyright 2026 PLCGuard Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package validation implements the multi-stage IEC 61131-3 compliance
// checks and the engine that orchestrates them.
//
// The checks are deliberately heuristic: they pattern-match over raw source
// text instead of parsing it. Every checker is total over arbitrary input;
// malformed code produces findings, never errors. Checkers carry no state,
// so any number of goroutines may validate concurrently.
package validation

import (
	"github.com/goccy/go-json"
)

// Severity classifies a validation finding. Only Critical findings affect
// the overall pass/fail outcome.
type Severity string

const (
	// SeverityCritical marks findings that fail the validation.
	SeverityCritical Severity = "critical"
	// SeverityWarning marks findings that should be fixed but do not fail
	// the validation.
	SeverityWarning Severity = "warning"
	// SeverityRecommendation marks purely advisory findings.
	SeverityRecommendation Severity = "recommendation"
)

// Summary is the coarse outcome of a validation run.
type Summary string

const (
	// SummaryValid means no critical findings were produced.
	SummaryValid Summary = "VALID"
	// SummaryInvalid means at least one critical finding was produced.
	SummaryInvalid Summary = "INVALID"
	// SummaryUnsupported means the brand does not accept the language and
	// no checker ran.
	SummaryUnsupported Summary = "UNSUPPORTED"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// LevelResult is the outcome of one stage of the ST pipeline.
type LevelResult struct {
	// Level is the stage number (1 = syntax, 2 = structure, 3 = compliance).
	Level int `json:"level"`
	// Name is the human-readable stage name.
	Name string `json:"name"`
	// Passed is true iff the stage produced no critical findings.
	Passed bool `json:"passed"`
	// Issues holds every finding of the stage, in rule order.
	Issues []Issue `json:"issues"`
	// Critical mirrors !Passed for serialized consumers.
	Critical bool `json:"critical"`
}

// Report is the aggregated outcome of a validation run. An outer transport
// layer may serialize it field-for-field; the JSON tags mirror the payload
// shape consumed by downstream tooling.
type Report struct {
	// Language is the declared source language.
	Language string `json:"language"`
	// Brand is the resolved brand id.
	Brand string `json:"brand"`
	// BrandName is the resolved brand display name.
	BrandName string `json:"brand_name"`
	// Passed is true iff zero critical findings exist across all stages.
	Passed bool `json:"validation_passed"`
	// Summary is the coarse outcome.
	Summary Summary `json:"summary"`
	// Issues holds the critical findings.
	Issues []Issue `json:"all_issues"`
	// Warnings holds the warning findings.
	Warnings []Issue `json:"all_warnings"`
	// Recommendations holds the advisory findings.
	Recommendations []Issue `json:"all_recommendations"`
	// Levels is the per-stage breakdown. Only populated for ST.
	Levels []LevelResult `json:"levels,omitempty"`
}

// JSON serializes the report.
func (r Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// stageResult accumulates the findings of a single checker stage, split by
// severity the same way the report is.
type stageResult struct {
	issues          []Issue
	warnings        []Issue
	recommendations []Issue
}

func (s *stageResult) critical(message string) {
	s.issues = append(s.issues, Issue{Severity: SeverityCritical, Message: message})
}

func (s *stageResult) warn(message string) {
	s.warnings = append(s.warnings, Issue{Severity: SeverityWarning, Message: message})
}

func (s *stageResult) recommend(message string) {
	s.recommendations = append(s.recommendations, Issue{Severity: SeverityRecommendation, Message: message})
}

func (s *stageResult) passed() bool {
	return len(s.issues) == 0
}

// level converts the stage findings into a LevelResult, preserving rule
// order within the combined issue list.
func (s *stageResult) level(number int, name string) LevelResult {
	combined := make([]Issue, 0, len(s.issues)+len(s.warnings)+len(s.recommendations))
	combined = append(combined, s.issues...)
	combined = append(combined, s.warnings...)
	combined = append(combined, s.recommendations...)

	return LevelResult{
		Level:    number,
		Name:     name,
		Passed:   s.passed(),
		Issues:   combined,
		Critical: !s.passed(),
	}
}
