package phone

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "phonefixtures/internal/core/context"
	"phonefixtures/pkg/logger"
)

// recordingStore keeps every inserted record and can fail on a given call.
type recordingStore struct {
	records []*PhoneRecord
	calls   int
	failOn  int // 1-based call number, 0 = never
	failErr error
	runIDs  []string
}

func (s *recordingStore) Insert(ctx context.Context, rec *PhoneRecord) error {
	s.calls++
	s.runIDs = append(s.runIDs, appctx.GetRunID(ctx))
	if s.failOn != 0 && s.calls == s.failOn {
		return s.failErr
	}
	s.records = append(s.records, rec)
	return nil
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.messages = append(n.messages, message)
}

// scriptedRand returns the given indexes in order, cycling.
type scriptedRand struct {
	picks []int
	pos   int
}

func (r *scriptedRand) IntN(n int) int {
	v := r.picks[r.pos%len(r.picks)] % n
	r.pos++
	return v
}

func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.NewNop())
}

func TestSynthesize_ProducesOneRecordPerIndex(t *testing.T) {
	store := &recordingStore{}
	notifier := &recordingNotifier{}
	synth := NewSynthesizer(store, WithRand(NewSeededRand(1)), WithNotifier(notifier))

	err := synth.Synthesize(testContext(), 700, 5, 8)
	require.NoError(t, err)

	require.Len(t, store.records, 3)
	displayRe := regexp.MustCompile(`^\+(\d+) 700-(\d+)$`)
	for i, rec := range store.records {
		number := int64(5 + i)
		c := rec.Components

		assert.Equal(t, number, c.Number)
		assert.Equal(t, int64(700), c.Provider)
		assert.Equal(t, int64(0), c.Prefix)
		assert.True(t, IsRegionCode(c.Country), "country %d", c.Country)
		assert.Equal(t, c.Country*10_000_000_000+700*10_000_000+number, rec.ID)

		m := displayRe.FindStringSubmatch(rec.Display)
		require.NotNil(t, m, rec.Display)
		assert.Equal(t, strconv.FormatInt(c.Country, 10), m[1])
		assert.Equal(t, strconv.FormatInt(number, 10), m[2])
	}

	require.Len(t, notifier.messages, 4)
	for i, rec := range store.records {
		assert.Equal(t, "Inserted synthetic mobile number: "+rec.Display, notifier.messages[i])
	}
	assert.Equal(t, "Done!", notifier.messages[3])
}

func TestSynthesize_ScriptedCountries(t *testing.T) {
	store := &recordingStore{}
	synth := NewSynthesizer(store, WithRand(&scriptedRand{picks: []int{0, 7, 3}}))

	require.NoError(t, synth.Synthesize(testContext(), 33, 10_000, 10_003))

	require.Len(t, store.records, 3)
	assert.Equal(t, "+254 33-10000", store.records[0].Display)
	assert.Equal(t, "+262 33-10001", store.records[1].Display)
	assert.Equal(t, "+257 33-10002", store.records[2].Display)
	assert.Equal(t, int64(1), store.records[2].Components.Prefix)
}

func TestSynthesize_SameSeedSameOutput(t *testing.T) {
	a, b := &recordingStore{}, &recordingStore{}

	require.NoError(t, NewSynthesizer(a, WithRand(NewSeededRand(99))).Synthesize(testContext(), 700, 0, 50))
	require.NoError(t, NewSynthesizer(b, WithRand(NewSeededRand(99))).Synthesize(testContext(), 700, 0, 50))

	assert.Equal(t, a.records, b.records)
}

func TestSynthesize_EmptyRange(t *testing.T) {
	tests := []struct {
		name        string
		start, stop int64
	}{
		{"start equals stop", 5, 5},
		{"start after stop", 8, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			notifier := &recordingNotifier{}
			synth := NewSynthesizer(store, WithNotifier(notifier))

			err := synth.Synthesize(testContext(), 700, tt.start, tt.stop)

			require.NoError(t, err)
			assert.Zero(t, store.calls)
			assert.Equal(t, []string{"Done!"}, notifier.messages)
		})
	}
}

func TestSynthesize_HaltsOnStoreFailure(t *testing.T) {
	errDuplicate := errors.New("duplicate id")
	store := &recordingStore{failOn: 2, failErr: errDuplicate}
	notifier := &recordingNotifier{}
	synth := NewSynthesizer(store, WithRand(&scriptedRand{picks: []int{0}}), WithNotifier(notifier))

	err := synth.Synthesize(testContext(), 700, 5, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, errDuplicate)
	assert.Contains(t, err.Error(), fmt.Sprintf("insert index 6 (id %d)", ComputeID(254, 700, 6)))

	assert.Equal(t, 2, store.calls, "no index after the failing one is attempted")
	require.Len(t, store.records, 1)
	assert.Equal(t, int64(5), store.records[0].Components.Number)
	assert.Equal(t, []string{"Inserted synthetic mobile number: +254 700-5"}, notifier.messages)
}

func TestSynthesize_CancelledContext(t *testing.T) {
	store := &recordingStore{}
	ctx, cancel := context.WithCancel(testContext())
	cancel()

	err := NewSynthesizer(store).Synthesize(ctx, 700, 0, 3)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.calls)
}

func TestSynthesize_RunID(t *testing.T) {
	t.Run("reused from context", func(t *testing.T) {
		store := &recordingStore{}
		ctx := appctx.WithRun(testContext(), &appctx.RunContext{RunID: "run-fixed"})

		require.NoError(t, NewSynthesizer(store).Synthesize(ctx, 700, 0, 2))

		assert.Equal(t, []string{"run-fixed", "run-fixed"}, store.runIDs)
	})

	t.Run("generated when absent", func(t *testing.T) {
		store := &recordingStore{}

		require.NoError(t, NewSynthesizer(store).Synthesize(testContext(), 700, 0, 2))

		require.Len(t, store.runIDs, 2)
		assert.NotEmpty(t, store.runIDs[0])
		assert.Equal(t, store.runIDs[0], store.runIDs[1])
	})
}
