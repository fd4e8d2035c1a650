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

// Package metrics exposes Prometheus instrumentation for the validation
// engine and the code cache. All collectors are registered on the default
// registry via promauto; an outer process decides whether and where to
// serve them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Namespace and subsystem for all metrics.
	namespace = "plcguard"
	subsystem = "core"

	// Validation counters.
	validationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validations_total",
			Help:      "Total number of validation runs by language, brand and summary",
		},
		[]string{"language", "brand", "summary"},
	)

	validationIssuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validation_issues_total",
			Help:      "Total number of validation findings by severity",
		},
		[]string{"severity"},
	)

	// Validation timing.
	validationDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "validation_duration_milliseconds",
			Help:      "Time taken to validate a single source (in milliseconds)",
			Objectives: map[float64]float64{
				0.5:  0.01, // 50th percentile with 1% error
				0.9:  0.01, // 90th percentile with 1% error
				0.99: 0.01, // 99th percentile with 1% error
			},
		},
		[]string{"language"},
	)

	// Cache operation counters.
	cacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_ops_total",
			Help:      "Total number of cache operations by type and outcome",
		},
		[]string{"operation", "outcome"},
	)

	cacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_entries",
			Help:      "Current number of entries held by the code cache",
		},
	)

	cacheSweepRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_sweep_removed_total",
			Help:      "Total number of entries removed by the periodic cache sweep",
		},
	)
)

// ObserveValidation records one validation run with its duration.
func ObserveValidation(language, brand, summary string, duration time.Duration) {
	validationsTotal.WithLabelValues(language, brand, summary).Inc()
	validationDuration.WithLabelValues(language).Observe(float64(duration.Milliseconds()))
}

// AddIssues records validation findings of the given severity.
func AddIssues(severity string, count int) {
	if count <= 0 {
		return
	}
	validationIssuesTotal.WithLabelValues(severity).Add(float64(count))
}

// ObserveCacheOp records a single cache operation and its outcome
// (e.g. "hit", "miss", "expired", "ok").
func ObserveCacheOp(operation, outcome string) {
	cacheOpsTotal.WithLabelValues(operation, outcome).Inc()
}

// SetCacheEntries updates the cache entry count gauge.
func SetCacheEntries(count int) {
	cacheEntries.Set(float64(count))
}

// AddSweepRemoved records entries removed by a sweep cycle.
func AddSweepRemoved(count int) {
	if count <= 0 {
		return
	}
	cacheSweepRemovedTotal.Add(float64(count))
}
