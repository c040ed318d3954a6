package llm

import "errors"

// Failure kinds surfaced by providers and output decoding. Callers match
// with errors.Is.
var (
	// ErrService marks transport or service-side failures.
	ErrService = errors.New("service error")

	// ErrSchemaMismatch marks model output that does not conform to the
	// declared schema.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
