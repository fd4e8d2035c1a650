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

var (
	ilLabelRegex      = regexp.MustCompile(`(?m)^([A-Z_]\w*):`)
	ilJumpRegex       = regexp.MustCompile(`JMP\s+(\w+)|JMPC\s+(\w+)|JMPCN\s+(\w+)`)
	ilLoadRegex       = regexp.MustCompile(`LD|LDN`)
	ilSensorRegex     = regexp.MustCompile(`SENSOR|INPUT|BUTTON`)
	ilEdgeMarkerRegex = regexp.MustCompile(`_P|_N|P1|N1`)
)

// checkIL validates Instruction List source in a single pass: every line's
// first token is classified as instruction, label or unknown, and jump
// targets are resolved against the labels found anywhere in the source.
func checkIL(code string, brand catalog.Brand) stageResult {
	var res stageResult

	codeUpper := strings.ToUpper(code)

	instructionCount := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		instr := strings.ToUpper(fields[0])
		if _, ok := catalog.ILInstructions[instr]; ok {
			instructionCount++
		} else if !strings.HasSuffix(instr, ":") {
			res.warn(fmt.Sprintf("Unknown instruction: %s", instr))
		}
	}

	if instructionCount == 0 {
		res.critical("No valid IL instructions found")
	}

	// A label satisfies a jump no matter where it appears, before or
	// after the jump instruction.
	labels := make(map[string]struct{})
	for _, match := range ilLabelRegex.FindAllStringSubmatch(codeUpper, -1) {
		labels[match[1]] = struct{}{}
	}
	for _, match := range ilJumpRegex.FindAllStringSubmatch(codeUpper, -1) {
		for _, target := range match[1:] {
			if target == "" {
				continue
			}
			if _, ok := labels[target]; !ok {
				res.critical(fmt.Sprintf("Jump target '%s' not found as label", target))
			}
		}
	}

	if instructionCount > 0 && !ilLoadRegex.MatchString(codeUpper) {
		res.warn("No initial load (LD/LDN) found")
	}

	if ilSensorRegex.MatchString(codeUpper) {
		if !ilEdgeMarkerRegex.MatchString(code) {
			res.critical("Input without edge marker (_P, _N)")
		}
	}

	return res
}
