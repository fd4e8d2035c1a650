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

// Package cache provides the in-memory store for generated code. Entries
// live for a bounded time and are evicted both lazily on read and eagerly
// by a background sweep; both paths share the same expiry predicate, so an
// entry that one path considers expired is expired for the other as well.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plcguard/plcguard/pkg/config"
	"github.com/plcguard/plcguard/pkg/logger"
	"github.com/plcguard/plcguard/pkg/metrics"
)

// Entry is one cached piece of generated code. Entries are never mutated
// after creation; Set replaces the whole entry.
type Entry struct {
	Key       string
	Value     string
	Metadata  map[string]string
	CreatedAt time.Time
}

// EntryView is the read model returned by GetWithMetadata.
type EntryView struct {
	Value      string            `json:"code"`
	Metadata   map[string]string `json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
	AgeSeconds float64           `json:"age_seconds"`
}

// Stats describes the cache state at one point in time.
type Stats struct {
	Count                int      `json:"count"`
	MaxAgeSeconds        int      `json:"max_age_seconds"`
	SweepIntervalSeconds int      `json:"sweep_interval_seconds"`
	Keys                 []string `json:"keys"`
}

// Cache is a TTL-bounded key/value store. It is the only shared mutable
// state in the core: all operations on the key space are mutually
// exclusive under one mutex, so a read racing the sweep's deletion of the
// same key deterministically sees either the value or absence.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry

	maxAge        time.Duration
	sweepInterval time.Duration

	log    *zap.SugaredLogger
	ctx    context.Context //nolint:containedctx // This is intentional for background sweep lifecycle
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a cache and starts its background sweep. The returned cache
// must be stopped with Stop when no longer needed.
func New(cfg config.CacheConfig) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		entries:       make(map[string]Entry),
		maxAge:        cfg.MaxAge,
		sweepInterval: cfg.SweepInterval,
		log:           logger.For(logger.ComponentCodeCache),
		ctx:           ctx,
		cancel:        cancel,
	}

	c.wg.Add(1)

	go c.sweepLoop()

	c.log.Infof("Code cache created with max age %s, sweep interval %s", cfg.MaxAge, cfg.SweepInterval)

	return c
}

// NewKey builds a cache key in the <language>_<brand>_<id> form used by
// the code generation callers.
func NewKey(language, brand string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s_%x", language, brand, id[:4])
}

// Set stores a value under the key, silently overwriting any previous
// entry, and returns the key. The metadata map is copied so later caller
// mutations cannot leak into the stored entry.
func (c *Cache) Set(key, value string, metadata map[string]string) string {
	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Key:       key,
		Value:     value,
		Metadata:  meta,
		CreatedAt: time.Now(),
	}

	metrics.ObserveCacheOp("set", "ok")
	metrics.SetCacheEntries(len(c.entries))

	return key
}

// Get retrieves a value. Expired entries are deleted on the spot and
// reported as absent.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		metrics.ObserveCacheOp("get", "miss")
		return "", false
	}

	if c.expired(entry, time.Now()) {
		delete(c.entries, key)
		metrics.ObserveCacheOp("get", "expired")
		metrics.SetCacheEntries(len(c.entries))
		return "", false
	}

	metrics.ObserveCacheOp("get", "hit")
	return entry.Value, true
}

// GetWithMetadata retrieves a value together with its metadata, creation
// time and age. Expiry behaves exactly as in Get.
func (c *Cache) GetWithMetadata(key string) (EntryView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		metrics.ObserveCacheOp("get_with_metadata", "miss")
		return EntryView{}, false
	}

	now := time.Now()
	if c.expired(entry, now) {
		delete(c.entries, key)
		metrics.ObserveCacheOp("get_with_metadata", "expired")
		metrics.SetCacheEntries(len(c.entries))
		return EntryView{}, false
	}

	metrics.ObserveCacheOp("get_with_metadata", "hit")
	return EntryView{
		Value:      entry.Value,
		Metadata:   entry.Metadata,
		CreatedAt:  entry.CreatedAt,
		AgeSeconds: now.Sub(entry.CreatedAt).Seconds(),
	}, true
}

// Delete removes an entry and reports whether it existed.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
		metrics.SetCacheEntries(len(c.entries))
	}

	metrics.ObserveCacheOp("delete", outcomeOf(ok))
	return ok
}

// Clear removes every entry and returns how many there were.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := len(c.entries)
	c.entries = make(map[string]Entry)

	metrics.ObserveCacheOp("clear", "ok")
	metrics.SetCacheEntries(0)

	return count
}

// Stats returns the current cache statistics, including the live key set.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}

	return Stats{
		Count:                len(c.entries),
		MaxAgeSeconds:        int(c.maxAge.Seconds()),
		SweepIntervalSeconds: int(c.sweepInterval.Seconds()),
		Keys:                 keys,
	}
}

// Sweep removes all expired entries and returns the removal count. The
// background loop calls this periodically; it is exported so callers can
// force a cleanup cycle.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if c.expired(entry, now) {
			delete(c.entries, key)
			removed++
		}
	}

	if removed > 0 {
		metrics.AddSweepRemoved(removed)
		metrics.SetCacheEntries(len(c.entries))
	}

	return removed
}

// Stop gracefully terminates the background sweep. This should be called
// during shutdown to prevent goroutine leaks.
func (c *Cache) Stop() {
	c.log.Info("Stopping code cache sweep")
	c.cancel()
	c.wg.Wait()
	c.log.Info("Code cache sweep stopped")
}

// expired is the single expiry predicate shared by the lazy read path and
// the periodic sweep. Callers must hold c.mu.
func (c *Cache) expired(entry Entry, now time.Time) bool {
	return now.Sub(entry.CreatedAt) >= c.maxAge
}

// sweepLoop runs Sweep every sweep interval until Stop is called. No lock
// is held between cycles.
func (c *Cache) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				c.log.Infof("Cleaned up %d expired entries", removed)
			}
		}
	}
}

func outcomeOf(ok bool) string {
	if ok {
		return "ok"
	}
	return "miss"
}
