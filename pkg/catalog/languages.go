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

// Package catalog holds the immutable rule and brand tables shared by the
// validation engine. The catalog is built once at startup and never mutated
// afterwards; any number of goroutines may read it concurrently.
package catalog

import "strings"

// Language identifies one of the five IEC 61131-3 programming languages.
type Language string

const (
	// LanguageST is Structured Text.
	LanguageST Language = "ST"
	// LanguageLD is Ladder Diagram.
	LanguageLD Language = "LD"
	// LanguageFBD is Function Block Diagram.
	LanguageFBD Language = "FBD"
	// LanguageSFC is Sequential Function Chart.
	LanguageSFC Language = "SFC"
	// LanguageIL is Instruction List.
	LanguageIL Language = "IL"
)

// AllLanguages returns the closed set of IEC 61131-3 languages in canonical order.
func AllLanguages() []Language {
	return []Language{LanguageST, LanguageLD, LanguageFBD, LanguageSFC, LanguageIL}
}

// ParseLanguage converts a string into a Language. The comparison is
// case-insensitive. The second return value is false for anything outside
// the closed language set.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case LanguageST:
		return LanguageST, true
	case LanguageLD:
		return LanguageLD, true
	case LanguageFBD:
		return LanguageFBD, true
	case LanguageSFC:
		return LanguageSFC, true
	case LanguageIL:
		return LanguageIL, true
	default:
		return "", false
	}
}

// LanguageNames renders a language set as a comma-separated string for
// user-facing messages.
func LanguageNames(languages []Language) string {
	names := make([]string, 0, len(languages))
	for _, l := range languages {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
