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
)

// structureLevelName is the stage name reported for level 2.
const structureLevelName = "Structure Validation"

// varSectionRegex captures the text between VAR and END_VAR over the
// uppercased source.
var varSectionRegex = regexp.MustCompile(`(?s)VAR\s+(.*?)\s+END_VAR`)

// CheckStructure runs the level 2 structural completeness checks over an
// ST source: a program unit declaration with its terminator, a VAR section
// with typed variables, and a non-empty logic body.
//
// The declaration detection is substring-based over the uppercased source,
// so END_PROGRAM also satisfies the PROGRAM presence check. The heuristic
// keeps that imprecision on purpose.
func CheckStructure(code string) LevelResult {
	var res stageResult

	codeUpper := strings.ToUpper(code)

	hasProgram := strings.Contains(codeUpper, "PROGRAM")
	hasFB := strings.Contains(codeUpper, "FUNCTION_BLOCK")
	hasFunction := strings.Contains(codeUpper, "FUNCTION") && !hasFB

	if !hasProgram && !hasFB && !hasFunction {
		res.critical("Missing PROGRAM, FUNCTION_BLOCK, or FUNCTION declaration")
	}

	if hasProgram && !strings.Contains(codeUpper, "END_PROGRAM") {
		res.critical("PROGRAM declared but missing END_PROGRAM")
	}
	if hasFB && !strings.Contains(codeUpper, "END_FUNCTION_BLOCK") {
		res.critical("FUNCTION_BLOCK declared but missing END_FUNCTION_BLOCK")
	}
	if hasFunction && !strings.Contains(codeUpper, "END_FUNCTION") {
		res.critical("FUNCTION declared but missing END_FUNCTION")
	}

	if !strings.Contains(codeUpper, "VAR") {
		res.critical("Missing VAR section for variable declarations")
	} else if !strings.Contains(codeUpper, "END_VAR") {
		res.critical("VAR section declared but missing END_VAR")
	}

	// Every non-blank, non-comment line in the VAR section needs a type
	// separator. A single aggregated finding carries the offender count.
	if match := varSectionRegex.FindStringSubmatch(codeUpper); match != nil {
		untyped := 0
		for _, line := range strings.Split(match[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "(*") {
				continue
			}
			if !strings.Contains(line, ":") {
				untyped++
			}
		}
		if untyped > 0 {
			res.critical(fmt.Sprintf("Variables without type declarations found: %d variable(s)", untyped))
		}
	}

	if !strings.Contains(code, ":=") {
		res.warn("No variable initialization found - variables should have default values")
	}

	// The logic body is whatever follows the last END_VAR.
	mainLogic := code
	if idx := strings.LastIndex(code, "END_VAR"); idx >= 0 {
		mainLogic = code[idx+len("END_VAR"):]
	}
	if len(strings.TrimSpace(mainLogic)) < minCodeLength {
		res.critical("No main logic found after variable declarations")
	}

	return res.level(2, structureLevelName)
}
