package handlers

import (
	"github.com/gin-gonic/gin"

	"phonefixtures/internal/core/apperror"
	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/http/v1/dto"
)

// DigitsHandler exposes the distinct digit extractor.
type DigitsHandler struct {
	*BaseHandler
}

// NewDigitsHandler creates a new digits handler.
func NewDigitsHandler(base *BaseHandler) *DigitsHandler {
	return &DigitsHandler{BaseHandler: base}
}

// Get returns the sorted distinct digits of the value query parameter.
// GET /api/v1/digits?value=<v>
func (h *DigitsHandler) Get(c *gin.Context) {
	value, ok := c.GetQuery("value")
	if !ok {
		h.Error(c, apperror.NewValidation("value query parameter is required").WithDetail("field", "value"))
		return
	}

	h.OK(c, dto.DigitsResponse{
		Value:  value,
		Digits: phone.DistinctDigits(value),
	})
}
