package document

import (
	"context"
)

// Service defines the record processing service interface.
// It composes the CPF, CNPJ and phone handlers at the caller level.
type Service interface {
	// ProcessRecord runs every non-empty field through its handler with
	// validation on. Invalid fields are reported in the result, not as errors.
	ProcessRecord(ctx context.Context, record Record) (*RecordResult, error)

	// ProcessBatch processes records concurrently, preserving input order.
	ProcessBatch(ctx context.Context, records []Record) ([]*RecordResult, error)

	// Validate checks record fields against the document struct tags.
	Validate(record Record) error

	// Normalize builds typed value objects for the non-empty fields.
	Normalize(record Record) (Normalized, error)

	// Generate returns n sample documents of the given kind.
	Generate(ctx context.Context, kind Kind, n int, formatted bool) ([]string, error)
}
