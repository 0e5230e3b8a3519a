package phone

import (
	"context"
)

// Store persists records. Insert is synchronous and may fail, e.g. on a
// duplicate id; whether duplicates fail is the implementation's contract.
type Store interface {
	Insert(ctx context.Context, rec *PhoneRecord) error
}

// ListParams selects a page of stored records ordered by id.
type ListParams struct {
	// Provider restricts results to one provider when non-nil.
	Provider *int64
	Limit    int
	Offset   int
}

// DefaultListLimit applies when ListParams.Limit is zero or negative.
const DefaultListLimit = 100

// EffectiveLimit returns Limit or DefaultListLimit.
func (p ListParams) EffectiveLimit() int {
	if p.Limit <= 0 {
		return DefaultListLimit
	}
	return p.Limit
}

// Reader reads records back from a store.
type Reader interface {
	// Get returns apperror NOT_FOUND when id is absent.
	Get(ctx context.Context, id int64) (*PhoneRecord, error)
	List(ctx context.Context, params ListParams) ([]*PhoneRecord, error)
}

// Repository is a store that can also be read.
type Repository interface {
	Store
	Reader
}
