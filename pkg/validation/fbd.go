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
	"regexp"
	"strings"

	"github.com/plcguard/plcguard/pkg/catalog"
)

var (
	fbdBlockDefRegex   = regexp.MustCompile(`FUNCTION_BLOCK|FB\s+\w+`)
	fbdConnectionRegex = regexp.MustCompile(`->|;`)
	fbdInstanceRegex   = regexp.MustCompile(`\w+\s*:\s*(AND|OR|NOT|TON|TOF|ADD|SUB|MUL|DIV|CTU|CTD)`)
	fbdInputFlowRegex  = regexp.MustCompile(`(?i)INPUT|IN|->`)
	fbdOutputFlowRegex = regexp.MustCompile(`(?i)OUTPUT|OUT|;`)
	fbdCounterRegex    = regexp.MustCompile(`CTU|CTD`)
)

// checkFBD validates Function Block Diagram source in a single pass.
func checkFBD(code string, brand catalog.Brand) stageResult {
	var res stageResult

	codeUpper := strings.ToUpper(code)

	if !fbdBlockDefRegex.MatchString(codeUpper) && !strings.Contains(codeUpper, "VAR_EXTERNAL") {
		res.warn("No FUNCTION_BLOCK or VAR_EXTERNAL found")
	}

	if !fbdConnectionRegex.MatchString(code) {
		res.critical("No block connections (-> or ;) found")
		res.recommend("FBD must have inputs connected to outputs")
	}

	hasType := strings.Contains(codeUpper, "INT") ||
		strings.Contains(codeUpper, "BOOL") ||
		strings.Contains(codeUpper, "REAL")
	if !hasType {
		res.warn("No IEC type declarations found")
	}

	if !fbdInstanceRegex.MatchString(codeUpper) {
		res.critical("No function blocks detected")
		res.recommend("FBD must contain at least one function block")
	}

	if !fbdInputFlowRegex.MatchString(code) {
		res.critical("No inputs defined")
	}
	if !fbdOutputFlowRegex.MatchString(code) {
		res.critical("No outputs defined")
	}

	// Counter blocks count every scan the input is high unless the input
	// is edge-triggered.
	if fbdCounterRegex.MatchString(codeUpper) {
		if !strings.Contains(codeUpper, "R_TRIG") && !strings.Contains(code, "P") {
			res.critical("Counter input without edge detection")
			res.recommend("Use R_TRIG or edge-triggered input for counters")
		}
	}

	return res
}
