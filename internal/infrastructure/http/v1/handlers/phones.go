package handlers

import (
	"github.com/gin-gonic/gin"

	"phonefixtures/internal/core/apperror"
	appctx "phonefixtures/internal/core/context"
	"phonefixtures/internal/core/id"
	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/http/v1/dto"
	"phonefixtures/pkg/logger"
)

// PhoneHandler serves stored records and runs synthesis.
type PhoneHandler struct {
	*BaseHandler
	reader       phone.Reader
	store        phone.Store
	fingerprints *phone.FingerprintService
	progress     *phone.LogNotifier
}

// NewPhoneHandler creates a new phone handler. Inserts go to store, reads
// to reader; both are usually the same repository, store possibly wrapped.
func NewPhoneHandler(base *BaseHandler, reader phone.Reader, store phone.Store, log *logger.Logger) *PhoneHandler {
	return &PhoneHandler{
		BaseHandler:  base,
		reader:       reader,
		store:        store,
		fingerprints: phone.NewFingerprintService(reader),
		progress:     phone.NewLogNotifier(log),
	}
}

// Get returns one record.
// GET /api/v1/phones/:id
func (h *PhoneHandler) Get(c *gin.Context) {
	recID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	rec, err := h.reader.Get(c.Request.Context(), recID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rec)
}

// Digits returns the digit fingerprint of one record.
// GET /api/v1/phones/:id/digits
func (h *PhoneHandler) Digits(c *gin.Context) {
	recID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	fp, err := h.fingerprints.Fingerprint(c.Request.Context(), recID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, fp)
}

// List returns a page of records ordered by id. The where expression is
// applied to the page after it is read.
// GET /api/v1/phones?provider=&limit=&offset=&where=
func (h *PhoneHandler) List(c *gin.Context) {
	var query dto.PhoneListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := phone.CompileFilter(query.Where)
	if err != nil {
		h.Error(c, err)
		return
	}

	params := query.ToListParams()
	recs, err := h.reader.List(c.Request.Context(), params)
	if err != nil {
		h.Error(c, err)
		return
	}

	recs, err = filter.Apply(recs)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(recs, params.EffectiveLimit(), params.Offset))
}

// Synthesize runs the synthesizer over [start, stop) and reports how many
// records were inserted.
// POST /api/v1/phones/synthesize
func (h *PhoneHandler) Synthesize(c *gin.Context) {
	var req dto.SynthesizeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if *req.Stop-*req.Start > dto.MaxSynthesizeRange {
		h.Error(c, apperror.NewValidation("range too large").
			WithDetail("max", dto.MaxSynthesizeRange))
		return
	}

	runID := id.NewString()
	ctx := appctx.WithRun(c.Request.Context(), &appctx.RunContext{RunID: runID})

	counter := phone.NewCountingStore(h.store)
	synth := phone.NewSynthesizer(counter,
		phone.WithRand(phone.RandFromSeed(req.SeedValue())),
		phone.WithNotifier(h.progress),
	)

	if err := synth.Synthesize(ctx, *req.Provider, *req.Start, *req.Stop); err != nil {
		appErr, ok := apperror.AsAppError(err)
		if !ok {
			appErr = apperror.NewInternal(err)
		}
		// Records inserted before the failure stay in the store.
		h.Error(c, appErr.
			WithDetail("run_id", runID).
			WithDetail("inserted", counter.Count()))
		return
	}

	h.Created(c, dto.SynthesizeResponse{
		RunID:    runID,
		Inserted: counter.Count(),
	})
}
