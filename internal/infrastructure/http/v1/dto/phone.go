package dto

import (
	"phonefixtures/internal/domain/phone"
)

// MaxSynthesizeRange caps stop-start for a single HTTP synthesis request.
const MaxSynthesizeRange = 100_000

// SynthesizeRequest is the body of POST /api/v1/phones/synthesize.
type SynthesizeRequest struct {
	Provider *int64  `json:"provider" binding:"required,min=0"`
	Start    *int64  `json:"start" binding:"required,min=0"`
	Stop     *int64  `json:"stop" binding:"required,min=0"`
	Seed     *uint64 `json:"seed"`
}

// SeedValue returns the requested seed or 0 (unseeded).
func (r SynthesizeRequest) SeedValue() uint64 {
	if r.Seed == nil {
		return 0
	}
	return *r.Seed
}

// SynthesizeResponse reports a finished synthesis run.
type SynthesizeResponse struct {
	RunID    string `json:"run_id"`
	Inserted int64  `json:"inserted"`
}

// DigitsResponse is the body of GET /api/v1/digits.
type DigitsResponse struct {
	Value  string `json:"value"`
	Digits []int  `json:"digits"`
}

// PhoneListQuery holds the query parameters of GET /api/v1/phones.
type PhoneListQuery struct {
	Provider *int64 `form:"provider" binding:"omitempty,min=0"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
	Where    string `form:"where"`
}

// ToListParams converts the query to repository list params.
func (q PhoneListQuery) ToListParams() phone.ListParams {
	return phone.ListParams{
		Provider: q.Provider,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
}
