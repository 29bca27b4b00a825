// apps/go-scorer/internal/results/memory.go
//
// In-memory result sink.
// A lightweight store for tests, or when durability is not required.
//
// Characteristics:
//   - Holds resumable records and the last bulk write separately.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.

package results

import (
	"context"
	"sync"
)

// Memory is an in-memory sink.
type Memory struct {
	mu      sync.RWMutex
	records []Record // appended, in order
	bulk    []Record // last WriteAll
	writes  int      // number of WriteAll calls
}

// NewMemory returns an empty in-memory sink, optionally pre-seeded with
// resumable records.
func NewMemory(seed ...Record) *Memory {
	m := &Memory{}
	m.records = append(m.records, seed...)
	return m
}

// Records returns a copy of the appended records.
func (m *Memory) Records(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Append adds r.
func (m *Memory) Append(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

// WriteAll replaces the bulk content.
func (m *Memory) WriteAll(ctx context.Context, recs []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bulk = make([]Record, len(recs))
	copy(m.bulk, recs)
	m.writes++
	return nil
}

// Bulk returns a copy of the last bulk write and how many bulk writes
// happened.
func (m *Memory) Bulk() ([]Record, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, len(m.bulk))
	copy(out, m.bulk)
	return out, m.writes
}

// Ranked prefers the bulk content and falls back to the appended records.
func (m *Memory) Ranked(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.bulk) > 0 {
		return ranked(m.bulk), nil
	}
	return ranked(m.records), nil
}
