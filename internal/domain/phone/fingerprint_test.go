package phone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonefixtures/internal/core/apperror"
)

type mapReader map[int64]*PhoneRecord

func (m mapReader) Get(_ context.Context, id int64) (*PhoneRecord, error) {
	rec, ok := m[id]
	if !ok {
		return nil, apperror.NewNotFound("phone", id)
	}
	return rec, nil
}

func (m mapReader) List(context.Context, ListParams) ([]*PhoneRecord, error) {
	return nil, nil
}

func TestFingerprintService_Fingerprint(t *testing.T) {
	rec := NewRecord(260, 977, 10_220)
	svc := NewFingerprintService(mapReader{rec.ID: rec})

	fp, err := svc.Fingerprint(context.Background(), rec.ID)

	require.NoError(t, err)
	assert.Equal(t, &Fingerprint{
		ID:      rec.ID,
		Number:  10_220,
		Display: "+260 977-10220",
		Digits:  []int{0, 1, 2},
	}, fp)
}

func TestFingerprintService_NotFound(t *testing.T) {
	svc := NewFingerprintService(mapReader{})

	fp, err := svc.Fingerprint(context.Background(), 1)

	assert.Nil(t, fp)
	assert.True(t, apperror.IsNotFound(err))
}
