package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonefixtures/internal/core/apperror"
	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/http/v1/dto"
	"phonefixtures/internal/infrastructure/http/v1/middleware"
	"phonefixtures/internal/infrastructure/storage/memory"
	"phonefixtures/pkg/logger"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *memory.PhoneStore) {
	t.Helper()
	store := memory.NewPhoneStore()
	router := NewRouter(RouterConfig{
		Logger: logger.NewNop(),
		Reader: store,
		Mode:   gin.TestMode,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
	})
	return router, store
}

func do(router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func synthesize(t *testing.T, router http.Handler, provider, start, stop int64, seed uint64) *httptest.ResponseRecorder {
	t.Helper()
	return do(router, http.MethodPost, "/api/v1/phones/synthesize", map[string]any{
		"provider": provider,
		"start":    start,
		"stop":     stop,
		"seed":     seed,
	})
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"database":"memory"`)
}

func TestMetricsRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "# metrics", rr.Body.String())
}

func TestTraceHeaders(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "req-1", rr.Header().Get(middleware.HeaderRequestID))
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderTraceID))
}

func TestDigits(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		query string
		want  []int
	}{
		{query: "value=4213", want: []int{1, 2, 3, 4}},
		{query: "value=1111", want: []int{1}},
		{query: "value=-3.14", want: []int{1, 3, 4}},
		{query: "value=abc", want: []int{}},
		{query: "value=", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := do(router, http.MethodGet, "/api/v1/digits?"+tt.query, nil)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, decode[dto.DigitsResponse](t, rr).Digits)
		})
	}
}

func TestDigits_MissingValue(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/api/v1/digits", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apperror.CodeValidation, decode[errorBody](t, rr).Code)
}

func TestSynthesize(t *testing.T) {
	router, store := newTestRouter(t)

	rr := synthesize(t, router, 700, 0, 5, 7)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decode[dto.SynthesizeResponse](t, rr)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, int64(5), resp.Inserted)
	assert.Equal(t, 5, store.Len())
}

func TestSynthesize_EmptyRange(t *testing.T) {
	router, store := newTestRouter(t)

	rr := synthesize(t, router, 700, 3, 3, 0)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, int64(0), decode[dto.SynthesizeResponse](t, rr).Inserted)
	assert.Zero(t, store.Len())
}

func TestSynthesize_DuplicateRun(t *testing.T) {
	router, store := newTestRouter(t)

	require.Equal(t, http.StatusCreated, synthesize(t, router, 700, 0, 3, 11).Code)

	// Same seed picks the same countries, so the first id collides.
	rr := synthesize(t, router, 700, 0, 3, 11)
	assert.Equal(t, http.StatusConflict, rr.Code)
	body := decode[errorBody](t, rr)
	assert.Equal(t, apperror.CodeDuplicate, body.Code)
	assert.NotEmpty(t, body.Details["run_id"])
	assert.Equal(t, float64(0), body.Details["inserted"])
	assert.Equal(t, 3, store.Len())
}

func TestSynthesize_PartialRunReportsProgress(t *testing.T) {
	router, store := newTestRouter(t)

	// Occupy index 2 under every region code so the run collides there
	// whichever country is picked.
	for _, country := range phone.RegionCodes {
		require.NoError(t, store.Insert(t.Context(), phone.NewRecord(country, 700, 2)))
	}

	rr := synthesize(t, router, 700, 0, 5, 3)
	require.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

	body := decode[errorBody](t, rr)
	assert.Equal(t, apperror.CodeDuplicate, body.Code)
	assert.NotEmpty(t, body.Details["run_id"])
	assert.Equal(t, float64(2), body.Details["inserted"])
	assert.Equal(t, len(phone.RegionCodes)+2, store.Len())
}

func TestSynthesize_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing provider", body: map[string]any{"start": 0, "stop": 1}},
		{name: "missing stop", body: map[string]any{"provider": 700, "start": 0}},
		{name: "negative start", body: map[string]any{"provider": 700, "start": -1, "stop": 1}},
		{name: "range too large", body: map[string]any{"provider": 700, "start": 0, "stop": dto.MaxSynthesizeRange + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(router, http.MethodPost, "/api/v1/phones/synthesize", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apperror.CodeValidation, decode[errorBody](t, rr).Code)
		})
	}
}

func TestPhones_GetAndDigits(t *testing.T) {
	router, store := newTestRouter(t)
	require.Equal(t, http.StatusCreated, synthesize(t, router, 700, 1234, 1235, 3).Code)

	recs, err := store.List(t.Context(), phone.ListParams{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	want := recs[0]

	rr := do(router, http.MethodGet, fmt.Sprintf("/api/v1/phones/%d", want.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[phone.PhoneRecord](t, rr)
	assert.Equal(t, *want, got)
	assert.Contains(t, rr.Body.String(), `"_id":`)

	rr = do(router, http.MethodGet, fmt.Sprintf("/api/v1/phones/%d/digits", want.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	fp := decode[phone.Fingerprint](t, rr)
	assert.Equal(t, []int{1, 2, 3, 4}, fp.Digits)
	assert.Equal(t, int64(1234), fp.Number)
}

func TestPhones_GetErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/api/v1/phones/2547000000001", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apperror.CodeNotFound, decode[errorBody](t, rr).Code)

	rr = do(router, http.MethodGet, "/api/v1/phones/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apperror.CodeInvalidInput, decode[errorBody](t, rr).Code)

	rr = do(router, http.MethodGet, "/api/v1/phones/abc/digits", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPhones_List(t *testing.T) {
	router, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, synthesize(t, router, 700, 0, 10, 5).Code)
	require.Equal(t, http.StatusCreated, synthesize(t, router, 711, 0, 4, 5).Code)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "all", query: "", want: 14},
		{name: "by provider", query: "?provider=711", want: 4},
		{name: "limit", query: "?limit=3", want: 3},
		{name: "offset", query: "?offset=12", want: 2},
		{name: "where", query: "?provider=700&where=number%20%3C%203", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(router, http.MethodGet, "/api/v1/phones"+tt.query, nil)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			resp := decode[dto.ListResponse[phone.PhoneRecord]](t, rr)
			assert.Equal(t, tt.want, resp.Count)
			assert.Len(t, resp.Items, tt.want)
		})
	}
}

func TestPhones_ListValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, query := range []string{"?where=number", "?where=(((", "?limit=0x", "?provider=-1"} {
		t.Run(query, func(t *testing.T) {
			rr := do(router, http.MethodGet, "/api/v1/phones"+query, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestPhones_ListEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(router, http.MethodGet, "/api/v1/phones", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}
