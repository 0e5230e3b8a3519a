package phone

import (
	"context"
	"sync/atomic"
)

// CountingStore wraps a Store and counts successful inserts.
type CountingStore struct {
	next  Store
	count atomic.Int64
}

// NewCountingStore wraps next.
func NewCountingStore(next Store) *CountingStore {
	return &CountingStore{next: next}
}

// Insert implements Store.
func (s *CountingStore) Insert(ctx context.Context, rec *PhoneRecord) error {
	if err := s.next.Insert(ctx, rec); err != nil {
		return err
	}
	s.count.Add(1)
	return nil
}

// Count returns the number of successful inserts so far.
func (s *CountingStore) Count() int64 {
	return s.count.Load()
}
