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

package validation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plcguard/plcguard/pkg/catalog"
	"github.com/plcguard/plcguard/pkg/logger"
	"github.com/plcguard/plcguard/pkg/metrics"
)

// Engine orchestrates brand resolution, language dispatch and result
// aggregation. It is stateless apart from its catalog reference and safe
// for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	log     *zap.SugaredLogger
}

// NewEngine creates a validation engine backed by the given brand catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{
		catalog: cat,
		log:     logger.For(logger.ComponentEngine),
	}
}

// Validate checks a source against the IEC 61131-3 rules for the declared
// language and the brand's vendor policy. It never returns an error:
// malformed code, an unknown language and an unsupported language-for-brand
// combination all come back as structured findings inside the report.
func (e *Engine) Validate(code, language, brandID string) Report {
	start := time.Now()

	lang, ok := catalog.ParseLanguage(language)
	if !ok {
		report := Report{
			Language: language,
			Brand:    brandID,
			Passed:   false,
			Summary:  SummaryInvalid,
			Issues: []Issue{
				{Severity: SeverityCritical, Message: fmt.Sprintf("Unsupported language: %s", language)},
			},
			Recommendations: []Issue{
				{Severity: SeverityRecommendation, Message: fmt.Sprintf("Use one of: %s", catalog.LanguageNames(catalog.AllLanguages()))},
			},
		}
		e.finish(report, start)
		return report
	}

	brand := e.catalog.Resolve(brandID)

	if !e.catalog.Supports(brand, lang) {
		report := Report{
			Language:  string(lang),
			Brand:     brand.ID,
			BrandName: brand.Name,
			Passed:    false,
			Summary:   SummaryUnsupported,
			Issues: []Issue{
				{Severity: SeverityCritical, Message: fmt.Sprintf("Brand '%s' does not support %s", brand.ID, lang)},
			},
			Recommendations: []Issue{
				{Severity: SeverityRecommendation, Message: fmt.Sprintf("Use %s for %s", catalog.LanguageNames(brand.Supports), brand.ID)},
			},
		}
		e.finish(report, start)
		return report
	}

	var report Report
	if lang == catalog.LanguageST {
		report = e.validateST(code)
	} else {
		report = e.validateSinglePass(code, lang, brand)
	}

	report.Language = string(lang)
	report.Brand = brand.ID
	report.BrandName = brand.Name
	report.Passed = len(report.Issues) == 0
	if report.Passed {
		report.Summary = SummaryValid
	} else {
		report.Summary = SummaryInvalid
	}

	e.finish(report, start)
	return report
}

// BrandInfo returns the vendor policy details for a brand id. Unlike
// Resolve, unknown ids report absence instead of falling back.
func (e *Engine) BrandInfo(id string) (catalog.BrandInfo, bool) {
	return e.catalog.BrandInfo(id)
}

// ListBrands enumerates the known vendor policies.
func (e *Engine) ListBrands() []catalog.BrandSummary {
	return e.catalog.ListBrands()
}

// validateST runs the three-level ST pipeline and concatenates the level
// findings in stage order.
func (e *Engine) validateST(code string) Report {
	levels := []LevelResult{
		CheckSyntax(code),
		CheckStructure(code),
		CheckCompliance(code),
	}

	var report Report
	report.Levels = levels
	for _, level := range levels {
		for _, issue := range level.Issues {
			report.append(issue)
		}
	}
	return report
}

// validateSinglePass dispatches to the one-shot validator for the
// language. The language set is closed, so the switch is exhaustive.
func (e *Engine) validateSinglePass(code string, lang catalog.Language, brand catalog.Brand) Report {
	var res stageResult

	switch lang {
	case catalog.LanguageLD:
		res = checkLadder(code, brand)
	case catalog.LanguageFBD:
		res = checkFBD(code, brand)
	case catalog.LanguageSFC:
		res = checkSFC(code, brand)
	case catalog.LanguageIL:
		res = checkIL(code, brand)
	}

	return Report{
		Issues:          res.issues,
		Warnings:        res.warnings,
		Recommendations: res.recommendations,
	}
}

// append routes an issue into the severity bucket it belongs to.
func (r *Report) append(issue Issue) {
	switch issue.Severity {
	case SeverityCritical:
		r.Issues = append(r.Issues, issue)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, issue)
	case SeverityRecommendation:
		r.Recommendations = append(r.Recommendations, issue)
	}
}

func (e *Engine) finish(report Report, start time.Time) {
	duration := time.Since(start)

	metrics.ObserveValidation(report.Language, report.Brand, string(report.Summary), duration)
	metrics.AddIssues(string(SeverityCritical), len(report.Issues))
	metrics.AddIssues(string(SeverityWarning), len(report.Warnings))
	metrics.AddIssues(string(SeverityRecommendation), len(report.Recommendations))

	e.log.Debugw("Validation completed",
		"language", report.Language,
		"brand", report.Brand,
		"summary", report.Summary,
		"critical", len(report.Issues),
		"warnings", len(report.Warnings),
		"recommendations", len(report.Recommendations),
		"duration", duration,
	)
}
