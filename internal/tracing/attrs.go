package tracing

// Span names.
const (
	SpanCreate = "enrichment.create"
	SpanEdit   = "enrichment.edit"
)

// Span attribute keys.
const (
	AttrKind       = "enrichment.kind"
	AttrTitle      = "enrichment.title"
	AttrName       = "enrichment.name"
	AttrIndex      = "enrichment.index"
	AttrSequence   = "enrichment.sequence"
	AttrTokenCount = "chips.tokens"
	AttrInvalid    = "chips.invalid"
	AttrErrorState = "chips.error_state"
)
