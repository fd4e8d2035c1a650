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

package validation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/plcguard/plcguard/pkg/catalog"
	"github.com/plcguard/plcguard/pkg/validation"
)

var _ = Describe("Engine", func() {
	var engine *validation.Engine

	BeforeEach(func() {
		engine = validation.NewEngine(catalog.MustNew())
	})

	Context("language dispatch", func() {
		It("should report an unknown language as data, not an error", func() {
			report := engine.Validate("anything", "SCL", "generic")

			Expect(report.Summary).To(Equal(validation.SummaryInvalid))
			Expect(report.Passed).To(BeFalse())
			Expect(report.Issues).To(HaveLen(1))
			Expect(report.Issues[0].Message).To(Equal("Unsupported language: SCL"))
			Expect(report.Recommendations[0].Message).To(Equal("Use one of: ST, LD, FBD, SFC, IL"))
		})

		It("should accept lowercase language names", func() {
			report := engine.Validate("PROGRAM P VAR x : BOOL; END_VAR x := TRUE; END_PROGRAM", "st", "generic")

			Expect(report.Language).To(Equal("ST"))
			Expect(report.Summary).To(Equal(validation.SummaryValid))
		})
	})

	Context("brand resolution", func() {
		It("should treat an unknown brand identically to generic", func() {
			code := "PROGRAM P VAR x : BOOL; END_VAR x := TRUE; END_PROGRAM"

			unknown := engine.Validate(code, "ST", "no-such-vendor")
			generic := engine.Validate(code, "ST", "generic")

			Expect(unknown).To(Equal(generic))
			Expect(unknown.Brand).To(Equal("generic"))
		})

		It("should short-circuit unsupported languages before any checker runs", func() {
			// Empty code would fail every ST checker; UNSUPPORTED wins.
			report := engine.Validate("", "SFC", "siemens")

			Expect(report.Summary).To(Equal(validation.SummaryUnsupported))
			Expect(report.Issues).To(HaveLen(1))
			Expect(report.Issues[0].Message).To(Equal("Brand 'siemens' does not support SFC"))
			Expect(report.Recommendations).To(HaveLen(1))
			Expect(report.Recommendations[0].Message).To(Equal("Use ST, LD, FBD for siemens"))
			Expect(report.Levels).To(BeEmpty())
		})

		It("should return UNSUPPORTED for every brand/language pair outside the policy", func() {
			cat := catalog.MustNew()
			for _, summary := range cat.ListBrands() {
				supported := make(map[string]bool)
				for _, l := range summary.Languages {
					supported[l] = true
				}
				for _, lang := range catalog.AllLanguages() {
					if supported[string(lang)] {
						continue
					}
					report := engine.Validate("PROGRAM P END_PROGRAM", string(lang), summary.ID)
					Expect(report.Summary).To(Equal(validation.SummaryUnsupported),
						"brand %s language %s", summary.ID, lang)
				}
			}
		})
	})

	Context("ST pipeline", func() {
		It("should pass the minimal well-formed program", func() {
			report := engine.Validate("PROGRAM P VAR x : BOOL; END_VAR x := TRUE; END_PROGRAM", "ST", "generic")

			Expect(report.Passed).To(BeTrue())
			Expect(report.Summary).To(Equal(validation.SummaryValid))
			Expect(report.Levels).To(HaveLen(3))
			Expect(report.Levels[1].Passed).To(BeTrue())
			Expect(report.Levels[2].Passed).To(BeTrue())
		})

		It("should concatenate level findings in stage order", func() {
			// Unbalanced parens (level 1), missing declaration (level 2),
			// unguarded counter (level 3).
			report := engine.Validate("(\ncar_count := car_count + 1;", "ST", "generic")

			Expect(report.Passed).To(BeFalse())
			Expect(report.Levels).To(HaveLen(3))
			messages := issueMessages(report.Issues)
			Expect(messages[0]).To(ContainSubstring("Parenthesis mismatch"))
			Expect(messages).To(ContainElement("Missing PROGRAM, FUNCTION_BLOCK, or FUNCTION declaration"))
			Expect(messages).To(ContainElement("CRITICAL: Counter increment without boundary guard - will overflow at limit"))
		})

		It("should hold passed == (zero critical findings) on every path", func() {
			sources := map[string]string{
				"ST":  "sensor_a := TRUE;",
				"LD":  "NETWORK 1\nLD start_cmd\nAND enable\nST run_coil",
				"FBD": "x y z",
				"SFC": "STEP S1",
				"IL":  "LD a\nJMP missing",
			}
			for lang, code := range sources {
				report := engine.Validate(code, lang, "generic")
				Expect(report.Passed).To(Equal(len(report.Issues) == 0), "language %s", lang)
			}
		})
	})

	Context("LD validation", func() {
		It("should pass a complete ladder network", func() {
			report := engine.Validate("NETWORK 1\nLD start_cmd\nAND enable\nST run_coil", "LD", "generic")

			Expect(report.Passed).To(BeTrue())
			Expect(report.Levels).To(BeEmpty())
		})

		It("should flag missing contacts and coils", func() {
			report := engine.Validate("nothing useful here", "LD", "generic")

			messages := issueMessages(report.Issues)
			Expect(messages).To(ContainElement("No ladder contacts (LD, AND, OR) found"))
			Expect(messages).To(ContainElement("No ladder coils (ST, S, R) found"))
		})

		It("should flag a sensor input without an edge marker", func() {
			report := engine.Validate("NETWORK 1\nLD sensor_1\nST out_coil", "LD", "generic")

			Expect(issueMessages(report.Issues)).To(ContainElement("Input without edge detection (P/F prefix)"))
		})

		It("should warn about missing _p/_f suffixes under the mitsubishi policy", func() {
			report := engine.Validate("NETWORK 1\nLD start_cmd\nST run_coil", "LD", "mitsubishi")

			warnings := make([]string, 0, len(report.Warnings))
			for _, w := range report.Warnings {
				warnings = append(warnings, w.Message)
			}
			Expect(warnings).To(ContainElement("Mitsubishi LD should use _p, _f for edges"))
		})
	})

	Context("FBD validation", func() {
		It("should pass a connected block diagram", func() {
			code := "VAR_EXTERNAL x : BOOL; END_VAR\ndelay1 : TON;\nx -> delay1;\ndelay1 -> OUT;"
			report := engine.Validate(code, "FBD", "generic")

			Expect(report.Passed).To(BeTrue())
		})

		It("should flag missing connections and instances", func() {
			report := engine.Validate("x y z", "FBD", "generic")

			messages := issueMessages(report.Issues)
			Expect(messages).To(ContainElement("No block connections (-> or ;) found"))
			Expect(messages).To(ContainElement("No function blocks detected"))
		})

		It("should flag counters without edge detection", func() {
			code := "c1 : CTU;\nin1 -> c1;\nc1 -> out1;"
			report := engine.Validate(code, "FBD", "generic")

			Expect(issueMessages(report.Issues)).To(ContainElement("Counter input without edge detection"))
		})
	})

	Context("SFC validation", func() {
		It("should pass a chart with steps, transitions and a terminator", func() {
			code := "INITIAL STEP S0\nTRANSITION T1 FROM S0 TO S1\nSTEP S1\nACTION A1: motor := TRUE; END_ACTION\nEND_SFC"
			report := engine.Validate(code, "SFC", "generic")

			Expect(report.Passed).To(BeTrue())
		})

		It("should flag a chart without steps or transitions", func() {
			report := engine.Validate("nothing here", "SFC", "generic")

			messages := issueMessages(report.Issues)
			Expect(messages).To(ContainElement("No STEP definitions found"))
			Expect(messages).To(ContainElement("No TRANSITION definitions found"))
			Expect(messages).To(ContainElement("Missing END_SFC"))
		})

		It("should flag steps without transitions as missing flow", func() {
			report := engine.Validate("STEP Fill\nSTEP Drain\nEND_SFC", "SFC", "generic")

			messages := issueMessages(report.Issues)
			Expect(messages).To(ContainElement("Steps without transitions - no flow defined"))
		})
	})

	Context("IL validation", func() {
		It("should pass a program whose jumps resolve", func() {
			code := "start:\nLD sensor_P\nAND enable\nST output_coil\nJMP start"
			report := engine.Validate(code, "IL", "generic")

			Expect(report.Passed).To(BeTrue())
		})

		It("should flag an unresolved jump target exactly once", func() {
			report := engine.Validate("LD a\nJMP missing", "IL", "generic")

			Expect(report.Issues).To(HaveLen(1))
			Expect(report.Issues[0].Message).To(Equal("Jump target 'MISSING' not found as label"))
		})

		It("should accept a label that appears after the jump", func() {
			report := engine.Validate("LD a\nJMP missing\nmissing:\nRET", "IL", "generic")

			Expect(report.Passed).To(BeTrue())
		})

		It("should flag sources without any valid instruction", func() {
			report := engine.Validate("// just a comment\nFOO bar", "IL", "generic")

			Expect(issueMessages(report.Issues)).To(ContainElement("No valid IL instructions found"))
			warnings := make([]string, 0, len(report.Warnings))
			for _, w := range report.Warnings {
				warnings = append(warnings, w.Message)
			}
			Expect(warnings).To(ContainElement("Unknown instruction: FOO"))
		})

		It("should warn when no load instruction opens the logic", func() {
			report := engine.Validate("ADD 1\nST x", "IL", "generic")

			warnings := make([]string, 0, len(report.Warnings))
			for _, w := range report.Warnings {
				warnings = append(warnings, w.Message)
			}
			Expect(warnings).To(ContainElement("No initial load (LD/LDN) found"))
		})
	})

	Context("brand surface", func() {
		It("should expose brand details for known ids", func() {
			info, ok := engine.BrandInfo("siemens")

			Expect(ok).To(BeTrue())
			Expect(info.Name).To(Equal("Siemens SIMATIC (S7-1200/1500)"))
			Expect(info.SupportedLanguages).To(Equal([]string{"ST", "LD", "FBD"}))
		})

		It("should report absence for unknown ids", func() {
			_, ok := engine.BrandInfo("no-such-vendor")

			Expect(ok).To(BeFalse())
		})

		It("should list all brands in registration order", func() {
			brands := engine.ListBrands()

			ids := make([]string, 0, len(brands))
			for _, b := range brands {
				ids = append(ids, b.ID)
			}
			Expect(ids).To(Equal([]string{"siemens", "mitsubishi", "ab", "schneider", "generic"}))
		})
	})
})
