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
	ldNetworkRegex    = regexp.MustCompile(`(?i)NETWORK|//\s*Network`)
	ldContactRegex    = regexp.MustCompile(`\bLD\b|\bAND\b|\bOR\b`)
	ldCoilRegex       = regexp.MustCompile(`\bST\b|\bS\b|\bR\b`)
	ldSensorRegex     = regexp.MustCompile(`SENSOR|INPUT|BUTTON|SWITCH`)
	ldEdgeMarkerRegex = regexp.MustCompile(`(?m)(^|\s)(P|F|P1|N1)`)
	ldTimerRegex      = regexp.MustCompile(`TON|TOF|CNT|CTU|CTD`)
	ldMitsuEdgeRegex  = regexp.MustCompile(`_p|_f`)
)

// checkLadder validates Ladder Diagram source in a single pass.
func checkLadder(code string, brand catalog.Brand) stageResult {
	var res stageResult

	codeUpper := strings.ToUpper(code)

	if !ldNetworkRegex.MatchString(code) {
		res.warn("No NETWORK definitions found")
	}

	if !ldContactRegex.MatchString(codeUpper) {
		res.critical("No ladder contacts (LD, AND, OR) found")
	}
	if !ldCoilRegex.MatchString(codeUpper) {
		res.critical("No ladder coils (ST, S, R) found")
	}

	// Sensor-class inputs need an edge marker so a rung fires once per
	// transition, not once per scan while the input is held.
	if ldSensorRegex.MatchString(codeUpper) {
		if !ldEdgeMarkerRegex.MatchString(code) {
			res.critical("Input without edge detection (P/F prefix)")
			res.recommend("Use P for rising edge, F for falling edge on inputs")
		}
	}

	if ldTimerRegex.MatchString(codeUpper) && !strings.Contains(codeUpper, "NETWORK") {
		res.warn("Timer/Counter found but no network structure")
	}

	if !strings.Contains(code, "=") && !strings.Contains(codeUpper, "ST") {
		res.critical("No outputs defined")
	}

	// Mitsubishi marks edges with _p/_f suffixes instead of P/F prefixes.
	if brand.ID == "mitsubishi" {
		if !ldMitsuEdgeRegex.MatchString(code) {
			res.warn("Mitsubishi LD should use _p, _f for edges")
		}
	}

	return res
}
