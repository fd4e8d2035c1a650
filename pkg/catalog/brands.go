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

import (
	"fmt"
	"slices"
)

// GenericBrandID is the fallback brand every unknown id resolves to.
const GenericBrandID = "generic"

// Brand describes one PLC vendor policy: which languages it accepts and
// which additional compliance requirements it layers on top of the base
// IEC 61131-3 rule set.
type Brand struct {
	// ID is the lookup key, e.g. "siemens".
	ID string
	// Name is the human-readable vendor and product line name.
	Name string
	// Supports lists the languages this vendor accepts. Never empty.
	Supports []Language
	// TimerFormat names the vendor's timer function blocks.
	TimerFormat string
	// EdgeDetection names the vendor's edge detection convention.
	EdgeDetection string
	// Requirements is the ordered list of vendor compliance rules.
	Requirements []string
}

// BrandInfo is the detail view returned for a single brand lookup.
type BrandInfo struct {
	Brand              string   `json:"brand"`
	Name               string   `json:"name"`
	SupportedLanguages []string `json:"supported_languages"`
	TimerSupport       string   `json:"timer_support"`
	EdgeDetection      string   `json:"edge_detection"`
	ComplianceRules    []string `json:"compliance_rules"`
}

// BrandSummary is the list view returned when enumerating brands.
type BrandSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

// builtinBrands returns the built-in vendor policy table.
func builtinBrands() []Brand {
	return []Brand{
		{
			ID:            "siemens",
			Name:          "Siemens SIMATIC (S7-1200/1500)",
			Supports:      []Language{LanguageST, LanguageLD, LanguageFBD},
			TimerFormat:   "TON, TOF, TONR",
			EdgeDetection: "R_TRIG, F_TRIG",
			Requirements: []string{
				"Use IEC 61131-3 standard types",
				"No SIMATIC-specific pragmas in generated code",
				"Counter operations must be guarded",
				"Edge detection mandatory for inputs",
			},
		},
		{
			ID:            "mitsubishi",
			Name:          "Mitsubishi MELSEC",
			Supports:      []Language{LanguageLD, LanguageST, LanguageIL},
			TimerFormat:   "TMR, CNT",
			EdgeDetection: "Edge relay (*)_i",
			Requirements: []string{
				"Follow Mitsubishi IEC mapping",
				"Use standard IEC types",
				"Memory addressing must be valid",
			},
		},
		{
			ID:            "ab",
			Name:          "Allen-Bradley CompactLogix/ControlLogix",
			Supports:      []Language{LanguageLD, LanguageFBD, LanguageST},
			TimerFormat:   "TON, TOF, TONR",
			EdgeDetection: "One-Shot instruction (OSR)",
			Requirements: []string{
				"Use IEC wrapper compatibility",
				"Structure tag naming conventions",
				"Standard IEC 61131-3 compatibility",
			},
		},
		{
			ID:            "schneider",
			Name:          "Schneider Electric Modicon M241/M251",
			Supports:      []Language{LanguageLD, LanguageFBD, LanguageST},
			TimerFormat:   "TON, TOF, TONR",
			EdgeDetection: "R_TRIG, F_TRIG",
			Requirements: []string{
				"IEC 61131-3 compliance required",
				"Standard variable types only",
				"No vendor-specific extensions",
			},
		},
		{
			ID:            GenericBrandID,
			Name:          "Generic IEC 61131-3 Compliant PLC",
			Supports:      []Language{LanguageST, LanguageLD, LanguageFBD, LanguageSFC, LanguageIL},
			TimerFormat:   "TON, TOF, TONR",
			EdgeDetection: "R_TRIG, F_TRIG",
			Requirements: []string{
				"Pure IEC 61131-3 standard",
				"No vendor extensions",
				"Platform-independent code",
			},
		},
	}
}

// Catalog is the immutable brand policy table. Construct it once with New
// and share it by reference.
type Catalog struct {
	brands map[string]Brand
	order  []string
}

// New builds a catalog from the built-in brand table plus any extra vendor
// definitions (typically loaded from configuration at startup). An extra
// brand with an existing id replaces the built-in entry.
func New(extra ...Brand) (*Catalog, error) {
	c := &Catalog{brands: make(map[string]Brand)}

	for _, b := range builtinBrands() {
		c.brands[b.ID] = b
		c.order = append(c.order, b.ID)
	}

	for _, b := range extra {
		if b.ID == "" {
			return nil, fmt.Errorf("brand definition is missing an id")
		}
		if len(b.Supports) == 0 {
			return nil, fmt.Errorf("brand %q must support at least one language", b.ID)
		}
		if _, exists := c.brands[b.ID]; !exists {
			c.order = append(c.order, b.ID)
		}
		c.brands[b.ID] = b
	}

	return c, nil
}

// MustNew builds a catalog from the built-in table only and panics on
// failure. The built-in table is statically valid, so this never panics
// in practice.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve looks up a brand by id. Unknown ids silently fall back to the
// generic policy; callers that need to distinguish should use BrandInfo.
func (c *Catalog) Resolve(id string) Brand {
	if b, ok := c.brands[id]; ok {
		return b
	}
	return c.brands[GenericBrandID]
}

// Supports reports whether the brand accepts the given language.
func (c *Catalog) Supports(b Brand, language Language) bool {
	return slices.Contains(b.Supports, language)
}

// BrandInfo returns the detail view for a brand id. The second return
// value is false for unknown ids.
func (c *Catalog) BrandInfo(id string) (BrandInfo, bool) {
	b, ok := c.brands[id]
	if !ok {
		return BrandInfo{}, false
	}

	langs := make([]string, 0, len(b.Supports))
	for _, l := range b.Supports {
		langs = append(langs, string(l))
	}

	return BrandInfo{
		Brand:              b.ID,
		Name:               b.Name,
		SupportedLanguages: langs,
		TimerSupport:       b.TimerFormat,
		EdgeDetection:      b.EdgeDetection,
		ComplianceRules:    slices.Clone(b.Requirements),
	}, true
}

// ListBrands enumerates all brands in registration order.
func (c *Catalog) ListBrands() []BrandSummary {
	summaries := make([]BrandSummary, 0, len(c.order))
	for _, id := range c.order {
		b := c.brands[id]
		langs := make([]string, 0, len(b.Supports))
		for _, l := range b.Supports {
			langs = append(langs, string(l))
		}
		summaries = append(summaries, BrandSummary{ID: b.ID, Name: b.Name, Languages: langs})
	}
	return summaries
}
