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
	"regexp"
	"strings"

	"github.com/plcguard/plcguard/pkg/catalog"
)

// complianceLevelName is the stage name reported for level 3.
const complianceLevelName = "IEC 61131-3 Compliance"

// Pre-compiled rule patterns. All of them run over the case-normalized
// source; none of them is scope-aware. In particular, the guard patterns
// scan the entire source rather than the lexical block around the counter
// operation, which can both over- and under-report in multi-counter
// programs. That imprecision defines the rule semantics.
var (
	incrementPatterns = buildCounterPatterns(`\+`)
	decrementPatterns = buildCounterPatterns(`-`)

	incrementGuardRegex = regexp.MustCompile(`(?s)if\s+\w+\s*<\s*\w+.*?\n.*?:=.*?\+\s*1`)
	decrementGuardRegex = regexp.MustCompile(`(?s)if\s+\w+\s*>\s*0.*?\n.*?:=.*?-\s*1`)

	// Increment-then-clamp: the corrective assignment sits on the same
	// line as its condition, so this one does not span newlines.
	clampRegex = regexp.MustCompile(`if\s+\w+\s*>=\s*\w+.*?:=\s*\w+`)

	pascalCaseRegex = regexp.MustCompile(`\b[A-Z]+[a-z]*[A-Z][a-zA-Z]*\b`)

	forbiddenRegexes = buildForbiddenRegexes()
)

func buildCounterPatterns(op string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(catalog.CounterIdentifiers))
	for _, ident := range catalog.CounterIdentifiers {
		patterns = append(patterns, regexp.MustCompile(ident+`\s*:=\s*`+ident+`\s*`+op+`\s*1`))
	}
	return patterns
}

func buildForbiddenRegexes() []*regexp.Regexp {
	regexes := make([]*regexp.Regexp, 0, len(catalog.ForbiddenConstructs))
	for _, fc := range catalog.ForbiddenConstructs {
		regexes = append(regexes, regexp.MustCompile(`\b`+fc.Word+`\b`))
	}
	return regexes
}

// CheckCompliance runs the level 3 semantic and safety heuristics over an
// ST source. The rules execute in a fixed order and that order is part of
// the reporting contract.
func CheckCompliance(code string) LevelResult {
	var res stageResult

	codeLower := strings.ToLower(code)
	codeUpper := strings.ToUpper(code)

	checkEdgeDetection(&res, codeLower)
	checkIncrementGuards(&res, code, codeLower)
	checkDecrementGuards(&res, code, codeLower)
	checkPostHocClamping(&res, code, codeLower)
	checkTimerUsage(&res, codeLower)
	checkOutputAssignments(&res, code, codeLower)
	checkForbiddenConstructs(&res, codeUpper)
	checkNamingConvention(&res, code)
	checkCommentDensity(&res, code)

	return res.level(3, complianceLevelName)
}

// checkEdgeDetection flags level-triggered input handling. A PLC re-runs
// its whole program every scan cycle, so logic keyed directly off a held
// input fires once per cycle; only an edge-detection block (R_TRIG) turns
// the transition into a single pulse.
func checkEdgeDetection(res *stageResult, codeLower string) {
	if !containsAny(codeLower, catalog.InputVocabulary) {
		return
	}
	if !strings.Contains(codeLower, "r_trig") {
		res.critical("Input signals detected but no R_TRIG (Rising Edge) found - CRITICAL for scan-safe logic")
		res.recommend("Use R_TRIG function block for all physical digital inputs to prevent multiple triggers per scan")
	}
}

func checkIncrementGuards(res *stageResult, code, codeLower string) {
	for _, pattern := range incrementPatterns {
		if !pattern.MatchString(codeLower) {
			continue
		}
		if incrementGuardRegex.MatchString(codeLower) {
			continue
		}
		// Single-line guards slip past the regex above; a bound named
		// MAX* compared with < is accepted as evidence of one.
		if !strings.Contains(codeLower, "max") || !strings.Contains(code, "<") {
			res.critical("CRITICAL: Counter increment without boundary guard - will overflow at limit")
			res.recommend("MUST check: IF counter < MAX_CAPACITY THEN increment END_IF;")
		}
	}
}

func checkDecrementGuards(res *stageResult, code, codeLower string) {
	for _, pattern := range decrementPatterns {
		if !pattern.MatchString(codeLower) {
			continue
		}
		if decrementGuardRegex.MatchString(codeLower) {
			continue
		}
		if strings.Count(code, ">") == 0 {
			res.critical("CRITICAL: Counter decrement without zero guard - will go negative")
			res.recommend("MUST check: IF counter > 0 THEN decrement END_IF;")
		}
	}
}

// checkPostHocClamping flags the increment-then-correct pattern. It is a
// different defect than a missing guard: the state machine briefly holds
// an invalid value and repairs it afterwards. Invalid state has to be
// prevented, not repaired.
func checkPostHocClamping(res *stageResult, code, codeLower string) {
	if !strings.Contains(code, "car_count := car_count + 1") {
		return
	}
	if !strings.Contains(code, ":= 0") || !strings.Contains(code, "<") {
		return
	}
	if clampRegex.MatchString(codeLower) {
		res.critical("DESIGN ISSUE: Code allows invalid state then corrects it - illogical for industrial systems")
		res.recommend("Guard the operation BEFORE: IF entry_pulse.Q AND car_count < MAX THEN increment END_IF;")
	}
}

func checkTimerUsage(res *stageResult, codeLower string) {
	if !containsAny(codeLower, catalog.TimingVocabulary) {
		return
	}
	hasTimer := strings.Contains(codeLower, "ton") ||
		strings.Contains(codeLower, "tof") ||
		strings.Contains(codeLower, "tp")
	if !hasTimer {
		res.critical("Timing operation detected but no IEC timer (TON/TOF/TP) found")
		res.recommend("Use TON (Timer-On-Delay), TOF (Timer-Off-Delay), or TP (Pulse Timer) function blocks")
	}
}

func checkOutputAssignments(res *stageResult, code, codeLower string) {
	if !containsAny(codeLower, catalog.OutputVocabulary) {
		return
	}
	for _, line := range strings.Split(code, "\n") {
		if containsAny(strings.ToLower(line), catalog.OutputVocabulary) && strings.Contains(line, ":=") {
			return
		}
	}
	res.warn("Output variables declared but no assignments found")
	res.recommend("Ensure all outputs are explicitly assigned in the logic section")
}

func checkForbiddenConstructs(res *stageResult, codeUpper string) {
	for i, re := range forbiddenRegexes {
		if re.MatchString(codeUpper) {
			res.critical("Non-compliant: " + catalog.ForbiddenConstructs[i].Message)
		}
	}
}

// checkNamingConvention flags PascalCase identifiers in the declaration
// section. Advisory only: IEC code conventionally uses snake_case.
func checkNamingConvention(res *stageResult, code string) {
	varSection := ""
	if idx := strings.Index(code, "END_VAR"); idx >= 0 {
		varSection = code[:idx]
	}
	if varSection == "" {
		return
	}

	seen := make(map[string]struct{})
	var offenders []string
	for _, name := range pascalCaseRegex.FindAllString(varSection, -1) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		offenders = append(offenders, name)
		if len(offenders) == 3 {
			break
		}
	}

	if len(offenders) > 0 {
		res.recommend(fmt.Sprintf("Consider using snake_case for variable names: %s", strings.Join(offenders, ", ")))
	}
}

func checkCommentDensity(res *stageResult, code string) {
	commentCount := strings.Count(code, "(*") + strings.Count(code, "--")

	codeLines := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			codeLines++
		}
	}

	if codeLines > 20 && commentCount < 2 {
		res.recommend("Add comments explaining the logic (one per 10 lines minimum)")
	}
}

func containsAny(haystack string, words []string) bool {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
