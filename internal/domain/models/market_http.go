package models

// Requests for market HTTP endpoints. Defined in domain for consistency and reuse.

type MarketDataRequest struct {
	Type   string `param:"type" json:"type" validate:"required,oneof=stock crypto"`
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
	Days   int    `query:"days" json:"days" default:"90" validate:"gte=1,lte=365"`
}

type AnalysisRequest struct {
	Type   string `param:"type" json:"type" validate:"required,oneof=stock crypto"`
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type NewsRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}
