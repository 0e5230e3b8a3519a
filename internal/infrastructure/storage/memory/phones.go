// Package memory provides an in-process phone store for dry runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"phonefixtures/internal/core/apperror"
	"phonefixtures/internal/domain/phone"
)

// Compile-time check that PhoneStore implements phone.Repository.
var _ phone.Repository = (*PhoneStore)(nil)

// PhoneStore keeps records in a map keyed by id and rejects duplicates.
type PhoneStore struct {
	mu      sync.RWMutex
	records map[int64]phone.PhoneRecord
}

// NewPhoneStore creates an empty store.
func NewPhoneStore() *PhoneStore {
	return &PhoneStore{records: make(map[int64]phone.PhoneRecord)}
}

// Insert stores a copy of rec. A second record with the same id fails with
// DUPLICATE_ENTRY and leaves the first untouched.
func (s *PhoneStore) Insert(ctx context.Context, rec *phone.PhoneRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.ID]; exists {
		return apperror.NewDuplicate("phone", "id", rec.ID)
	}
	s.records[rec.ID] = *rec
	return nil
}

// Get returns a copy of record id.
func (s *PhoneStore) Get(_ context.Context, id int64) (*phone.PhoneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, apperror.NewNotFound("phone", id)
	}
	return &rec, nil
}

// List returns records ordered by id.
func (s *PhoneStore) List(_ context.Context, params phone.ListParams) ([]*phone.PhoneRecord, error) {
	s.mu.RLock()
	all := make([]*phone.PhoneRecord, 0, len(s.records))
	for _, rec := range s.records {
		if params.Provider != nil && rec.Components.Provider != *params.Provider {
			continue
		}
		rec := rec
		all = append(all, &rec)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if params.Offset >= len(all) {
		return []*phone.PhoneRecord{}, nil
	}
	if params.Offset > 0 {
		all = all[params.Offset:]
	}
	if limit := params.EffectiveLimit(); len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Len returns the number of stored records.
func (s *PhoneStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Purge removes every record of provider and returns how many were removed.
func (s *PhoneStore) Purge(_ context.Context, provider int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, rec := range s.records {
		if rec.Components.Provider == provider {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}
