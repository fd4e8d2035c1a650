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

package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/plcguard/plcguard/pkg/catalog"
	"github.com/plcguard/plcguard/pkg/config"
)

var _ = Describe("Config", func() {
	Context("ParseConfig", func() {
		It("should keep defaults for an empty document", func() {
			cfg, err := config.ParseConfig([]byte(""))

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Cache.MaxAge).To(Equal(config.DefaultCacheMaxAge))
			Expect(cfg.Cache.SweepInterval).To(Equal(config.DefaultCacheSweepInterval))
		})

		It("should parse cache settings", func() {
			doc := `
cache:
  maxAge: 30m
  sweepInterval: 1m
`
			cfg, err := config.ParseConfig([]byte(doc))

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Cache.MaxAge).To(Equal(30 * time.Minute))
			Expect(cfg.Cache.SweepInterval).To(Equal(time.Minute))
		})

		It("should reject non-positive durations", func() {
			_, err := config.ParseConfig([]byte("cache:\n  maxAge: -1s\n"))

			Expect(err).To(MatchError(ContainSubstring("maxAge must be positive")))
		})

		It("should reject malformed YAML", func() {
			_, err := config.ParseConfig([]byte("cache: ["))

			Expect(err).To(MatchError(ContainSubstring("failed to parse config")))
		})
	})

	Context("ExtraBrands", func() {
		It("should convert configured vendor policies into catalog brands", func() {
			doc := `
brands:
  - id: beckhoff
    name: Beckhoff TwinCAT
    languages: [ST, LD]
    timerFormat: TON, TOF
    requirements:
      - TwinCAT 3 library conventions
`
			cfg, err := config.ParseConfig([]byte(doc))
			Expect(err).NotTo(HaveOccurred())

			brands, err := cfg.ExtraBrands()
			Expect(err).NotTo(HaveOccurred())
			Expect(brands).To(HaveLen(1))
			Expect(brands[0].ID).To(Equal("beckhoff"))
			Expect(brands[0].Supports).To(Equal([]catalog.Language{catalog.LanguageST, catalog.LanguageLD}))
		})

		It("should reject unknown languages in a brand definition", func() {
			cfg := config.Config{Brands: []config.BrandConfig{{ID: "x", Languages: []string{"SCL"}}}}

			_, err := cfg.ExtraBrands()
			Expect(err).To(MatchError(ContainSubstring(`unknown language "SCL"`)))
		})
	})

	Context("LoadFromEnv", func() {
		It("should apply duration overrides from the environment", func() {
			GinkgoT().Setenv("PLCGUARD_CACHE_MAX_AGE", "90m")
			GinkgoT().Setenv("PLCGUARD_CACHE_SWEEP_INTERVAL", "45s")

			cfg, err := config.LoadFromEnv()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Cache.MaxAge).To(Equal(90 * time.Minute))
			Expect(cfg.Cache.SweepInterval).To(Equal(45 * time.Second))
		})

		It("should fall back to defaults when nothing is set", func() {
			cfg, err := config.LoadFromEnv()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Cache.MaxAge).To(Equal(config.DefaultCacheMaxAge))
		})
	})
})
