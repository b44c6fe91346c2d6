package playlist

import (
	"sync"

	"fitcoach/internal/catalog"
)

type fallbackKey struct {
	kind  catalog.Kind
	level int
}

// Metrics aggregates resolution counters across builds. Safe for concurrent
// use; one instance is shared between the API daemon and the engine.
type Metrics struct {
	mu             sync.Mutex
	builds         int64
	segments       int64
	storageRetries int64
	fallbackHits   map[fallbackKey]int64
	requiredMisses map[catalog.Kind]int64
	optionalMisses map[catalog.Kind]int64
}

// NewMetrics returns an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{
		fallbackHits:   make(map[fallbackKey]int64),
		requiredMisses: make(map[catalog.Kind]int64),
		optionalMisses: make(map[catalog.Kind]int64),
	}
}

func (m *Metrics) buildStarted() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.builds++
	m.mu.Unlock()
}

func (m *Metrics) segmentsEmitted(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.segments += int64(n)
	m.mu.Unlock()
}

func (m *Metrics) storageRetry() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.storageRetries++
	m.mu.Unlock()
}

func (m *Metrics) fallbackHit(kind catalog.Kind, level int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.fallbackHits[fallbackKey{kind: kind, level: level}]++
	m.mu.Unlock()
}

func (m *Metrics) miss(kind catalog.Kind) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if kind.Required() {
		m.requiredMisses[kind]++
	} else {
		m.optionalMisses[kind]++
	}
	m.mu.Unlock()
}

// FallbackHits returns the counter for one (kind, ladder level) pair. Level
// is 1-based; level 2 is the first fallback archetype.
func (m *Metrics) FallbackHits(kind catalog.Kind, level int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fallbackHits[fallbackKey{kind: kind, level: level}]
}

// RequiredMisses returns the error-level miss counter for a required kind.
func (m *Metrics) RequiredMisses(kind catalog.Kind) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requiredMisses[kind]
}

// OptionalMisses returns the debug-level miss counter for an optional kind.
func (m *Metrics) OptionalMisses(kind catalog.Kind) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.optionalMisses[kind]
}

// FallbackHit is one row of the snapshot's fallback table.
type FallbackHit struct {
	Kind  catalog.Kind `json:"kind"`
	Level int          `json:"level"`
	Count int64        `json:"count"`
}

// Snapshot is a point-in-time copy of all counters, shaped for JSON.
type Snapshot struct {
	Builds         int64            `json:"builds"`
	Segments       int64            `json:"segments"`
	StorageRetries int64            `json:"storage_retries"`
	FallbackHits   []FallbackHit    `json:"fallback_hits"`
	RequiredMisses map[string]int64 `json:"required_misses"`
	OptionalMisses map[string]int64 `json:"optional_misses"`
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Builds:         m.builds,
		Segments:       m.segments,
		StorageRetries: m.storageRetries,
		RequiredMisses: make(map[string]int64, len(m.requiredMisses)),
		OptionalMisses: make(map[string]int64, len(m.optionalMisses)),
	}
	for key, count := range m.fallbackHits {
		snap.FallbackHits = append(snap.FallbackHits, FallbackHit{Kind: key.kind, Level: key.level, Count: count})
	}
	for kind, count := range m.requiredMisses {
		snap.RequiredMisses[string(kind)] = count
	}
	for kind, count := range m.optionalMisses {
		snap.OptionalMisses[string(kind)] = count
	}
	return snap
}
