package phone

import (
	"context"
)

// Fingerprint is the distinct-digit set of a stored record's number.
type Fingerprint struct {
	ID      int64  `json:"id"`
	Number  int64  `json:"number"`
	Display string `json:"display"`
	Digits  []int  `json:"digits"`
}

// FingerprintService computes fingerprints of stored records.
type FingerprintService struct {
	reader Reader
}

// NewFingerprintService creates a service reading from reader.
func NewFingerprintService(reader Reader) *FingerprintService {
	return &FingerprintService{reader: reader}
}

// Fingerprint loads record id and returns its digit set.
func (s *FingerprintService) Fingerprint(ctx context.Context, id int64) (*Fingerprint, error) {
	rec, err := s.reader.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return FingerprintOf(rec), nil
}

// FingerprintOf builds a Fingerprint without touching a store.
func FingerprintOf(rec *PhoneRecord) *Fingerprint {
	return &Fingerprint{
		ID:      rec.ID,
		Number:  rec.Components.Number,
		Display: rec.Display,
		Digits:  RecordDigits(rec),
	}
}
