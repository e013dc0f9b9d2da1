package domain

import "context"

// ServicePort defines the service contract for filters
type ServicePort interface {
	Synthesize(ctx context.Context, in SynthesizeInput) (Filter, error)
	Get(ctx context.Context, id string) (Filter, error)
	List(ctx context.Context, limit int) ([]Filter, error)
}

// SchemaPort prepares the tables filters persist to
type SchemaPort interface {
	EnsureSchema(ctx context.Context) error
}
