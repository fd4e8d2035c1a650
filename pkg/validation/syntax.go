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
	"strings"
)

// syntaxLevelName is the stage name reported for level 1.
const syntaxLevelName = "Syntax Validation"

// minCodeLength is the minimum non-whitespace length a source must have.
const minCodeLength = 5

// CheckSyntax runs the level 1 syntax checks over an ST source: bracket
// pairing by count, single-quote parity and a minimum length.
//
// The pairing check is count-based, not nesting-aware: ")(" passes. This is
// a known limitation of the heuristic.
func CheckSyntax(code string) LevelResult {
	var res stageResult

	checkPairCount(&res, code, '(', ')', "Parenthesis")
	checkPairCount(&res, code, '[', ']', "Bracket")
	checkPairCount(&res, code, '{', '}', "Brace")

	// ST strings use single quotes; an odd count means one is unterminated.
	if strings.Count(code, "'")%2 != 0 {
		res.critical("Odd number of single quotes - possible unterminated string")
	}

	if len(strings.TrimSpace(code)) < minCodeLength {
		res.critical("Code is empty or too short")
	}

	return res.level(1, syntaxLevelName)
}

func checkPairCount(res *stageResult, code string, open, closing rune, label string) {
	openCount := strings.Count(code, string(open))
	closeCount := strings.Count(code, string(closing))
	if openCount != closeCount {
		res.critical(fmt.Sprintf("%s mismatch: %d open vs %d close", label, openCount, closeCount))
	}
}
