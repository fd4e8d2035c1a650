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

// Package config holds the runtime configuration of the validator core.
// Configuration is read once at startup (YAML document plus environment
// overrides) and the resulting values are shared by reference; nothing in
// this package mutates a Config after it has been produced.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plcguard/plcguard/pkg/catalog"
	"github.com/plcguard/plcguard/pkg/env"
)

const (
	// DefaultCacheMaxAge is how long generated code stays retrievable.
	DefaultCacheMaxAge = time.Hour
	// DefaultCacheSweepInterval is how often the background sweep runs.
	DefaultCacheSweepInterval = 5 * time.Minute
)

// CacheConfig configures the code cache.
type CacheConfig struct {
	// MaxAge is the retention window for cached entries.
	MaxAge time.Duration `yaml:"maxAge"`
	// SweepInterval is the period of the background cleanup task.
	SweepInterval time.Duration `yaml:"sweepInterval"`
}

// BrandConfig is a vendor policy definition supplied via configuration.
// It is merged into the brand catalog at startup.
type BrandConfig struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Languages     []string `yaml:"languages"`
	TimerFormat   string   `yaml:"timerFormat,omitempty"`
	EdgeDetection string   `yaml:"edgeDetection,omitempty"`
	Requirements  []string `yaml:"requirements,omitempty"`
}

// Config is the full runtime configuration.
type Config struct {
	Cache  CacheConfig   `yaml:"cache"`
	Brands []BrandConfig `yaml:"brands,omitempty"` // Extra vendor policies, merged into the catalog at startup
}

// DefaultConfig returns the configuration used when no YAML document is
// provided.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			MaxAge:        DefaultCacheMaxAge,
			SweepInterval: DefaultCacheSweepInterval,
		},
	}
}

// ParseConfig parses a YAML document into a Config. Fields absent from the
// document keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Cache.MaxAge <= 0 {
		return Config{}, fmt.Errorf("cache maxAge must be positive, got %s", cfg.Cache.MaxAge)
	}
	if cfg.Cache.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("cache sweepInterval must be positive, got %s", cfg.Cache.SweepInterval)
	}
	return cfg, nil
}

// LoadFromEnv returns the default configuration with environment variable
// overrides applied (PLCGUARD_CACHE_MAX_AGE, PLCGUARD_CACHE_SWEEP_INTERVAL).
func LoadFromEnv() (Config, error) {
	cfg := DefaultConfig()

	maxAge, err := env.GetAsDuration("PLCGUARD_CACHE_MAX_AGE", false, cfg.Cache.MaxAge)
	if err != nil {
		return Config{}, err
	}
	cfg.Cache.MaxAge = maxAge

	sweep, err := env.GetAsDuration("PLCGUARD_CACHE_SWEEP_INTERVAL", false, cfg.Cache.SweepInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.Cache.SweepInterval = sweep

	return cfg, nil
}

// ExtraBrands converts the configured vendor policies into catalog brands.
func (c Config) ExtraBrands() ([]catalog.Brand, error) {
	brands := make([]catalog.Brand, 0, len(c.Brands))
	for _, bc := range c.Brands {
		languages := make([]catalog.Language, 0, len(bc.Languages))
		for _, raw := range bc.Languages {
			lang, ok := catalog.ParseLanguage(raw)
			if !ok {
				return nil, fmt.Errorf("brand %q: unknown language %q", bc.ID, raw)
			}
			languages = append(languages, lang)
		}
		brands = append(brands, catalog.Brand{
			ID:            bc.ID,
			Name:          bc.Name,
			Supports:      languages,
			TimerFormat:   bc.TimerFormat,
			EdgeDetection: bc.EdgeDetection,
			Requirements:  bc.Requirements,
		})
	}
	return brands, nil
}
