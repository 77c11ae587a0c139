package ports

import "context"

// NameResolver resolves sets of foreign ids to display names in one call.
// List and detail screens need a name per row; requiring a batch capability
// here keeps the per-row single-entity fetches out of the workflow code.
//
// Implementations never fail a whole batch: an id that cannot be resolved
// maps to its decimal string form so the caller always has something to show.
type NameResolver interface {
	ResolveCustomerNames(ctx context.Context, ids []int64) map[int64]string
	ResolveProductNames(ctx context.Context, ids []int64) map[int64]string
}
