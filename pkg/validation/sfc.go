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
	sfcStepRegex        = regexp.MustCompile(`STEP\s+\w+|S\d+`)
	sfcTransitionRegex  = regexp.MustCompile(`TRANSITION\s+\w+|T\d+`)
	sfcActionRegex      = regexp.MustCompile(`ACTION\s+\w+`)
	sfcInitialStepRegex = regexp.MustCompile(`INITIAL\s+STEP|S0|STEP\s+0`)
)

// checkSFC validates Sequential Function Chart source in a single pass.
func checkSFC(code string, brand catalog.Brand) stageResult {
	var res stageResult

	codeUpper := strings.ToUpper(code)

	if !strings.Contains(codeUpper, "SFC") && !strings.Contains(codeUpper, "STEP") {
		res.warn("No SFC structure found")
	}

	steps := sfcStepRegex.FindAllString(codeUpper, -1)
	if len(steps) == 0 {
		res.critical("No STEP definitions found")
		res.recommend("SFC must have at least one STEP")
	}

	transitions := sfcTransitionRegex.FindAllString(codeUpper, -1)
	if len(transitions) == 0 {
		res.critical("No TRANSITION definitions found")
		res.recommend("SFC must have transitions between steps")
	}

	if sfcActionRegex.MatchString(codeUpper) && !strings.Contains(code, ":=") {
		res.warn("ACTION found but no variable assignments")
	}

	// Steps without a single transition describe a chart that can never
	// advance.
	if len(steps) > 0 && len(transitions) == 0 {
		res.critical("Steps without transitions - no flow defined")
	}

	if !sfcInitialStepRegex.MatchString(codeUpper) {
		res.warn("No initial step defined")
	}

	if !strings.Contains(codeUpper, "END_SFC") {
		res.critical("Missing END_SFC")
	}

	return res
}
