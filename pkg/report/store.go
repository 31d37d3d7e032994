package report

import (
	"context"
	"slices"
	"sync"
)

// Store persists reports.
type Store interface {
	// Save stores r. Saving an id twice replaces the earlier report.
	Save(ctx context.Context, r *Report) error

	// Get returns the report with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Report, error)

	// Latest returns the most recent report for mode, or ErrNotFound.
	// An empty mode matches any mode.
	Latest(ctx context.Context, mode string) (*Report, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps reports in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	reports []*Report
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = slices.DeleteFunc(s.reports, func(old *Report) bool { return old.ID == r.ID })
	s.reports = append(s.reports, r)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Latest(_ context.Context, mode string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *Report
	for _, r := range s.reports {
		if mode != "" && r.Mode != mode {
			continue
		}
		if latest == nil || !r.GeneratedAt.Before(latest.GeneratedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
