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

package catalog

// Token vocabularies consumed by the checkers. These are heuristic word
// lists, not grammars: a match means "this source talks about inputs /
// timing / outputs", nothing more.

// InputVocabulary are the lowercase words that indicate physical input
// handling in ST sources.
var InputVocabulary = []string{"input", "sensor", "button", "switch", "entry", "exit"}

// TimingVocabulary are the lowercase words that indicate timing behaviour
// in ST sources.
var TimingVocabulary = []string{"delay", "wait", "timer", "timeout"}

// OutputVocabulary are the lowercase words that indicate actuator outputs
// in ST sources.
var OutputVocabulary = []string{"output", "motor", "light", "pump", "valve"}

// CounterIdentifiers are the identifiers whose unguarded increment or
// decrement is treated as a boundary violation.
var CounterIdentifiers = []string{"counter", "count", "accumulator", "car_count"}

// ForbiddenConstruct pairs a banned whole-word statement with its finding
// message.
type ForbiddenConstruct struct {
	Word    string
	Message string
}

// ForbiddenConstructs are the whole-word statements that are incompatible
// with deterministic cyclic execution and therefore always critical. The
// slice order is the reporting order.
var ForbiddenConstructs = []ForbiddenConstruct{
	{"WAIT", "WAIT statement is not allowed in IEC ST - use TON/TOF timers instead"},
	{"SLEEP", "SLEEP is not part of IEC ST - use timers for delays"},
	{"GOTO", "GOTO is deprecated in IEC ST - use proper control structures"},
}

// ILInstructions is the accepted IEC 61131-3 Instruction List vocabulary.
var ILInstructions = map[string]struct{}{
	"LD": {}, "LDN": {},
	"AND": {}, "ANDN": {},
	"OR": {}, "ORN": {},
	"XOR": {}, "XORN": {},
	"NOT": {},
	"ADD": {}, "SUB": {}, "MUL": {}, "DIV": {}, "MOD": {},
	"GT": {}, "GE": {}, "EQ": {}, "LE": {}, "LT": {}, "NE": {},
	"JMP": {}, "JMPC": {}, "JMPCN": {},
	"CAL": {}, "CALC": {}, "CALCN": {},
	"RET": {}, "RETC": {}, "RETCN": {},
	"ST": {}, "STN": {},
}
