package app

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/erfansky/Dressmaking/internal/console/core/ports"
	"github.com/erfansky/Dressmaking/internal/pkg/cache"
)

// nameTTL bounds how stale a cached display name can get after a rename.
const nameTTL = 5 * time.Minute

// CachedResolver is the batch name-resolve capability behind list and
// detail screens. Uncached ids are fetched from the backend concurrently
// and the results collected before returning; an id that cannot be
// resolved maps to its decimal form so rows always render.
type CachedResolver struct {
	customers ports.CustomerService
	products  ports.ProductService
	cache     cache.Cache // nil-safe: every lookup goes to the backend if nil
}

var _ ports.NameResolver = (*CachedResolver)(nil)

func NewCachedResolver(customers ports.CustomerService, products ports.ProductService, c cache.Cache) *CachedResolver {
	return &CachedResolver{customers: customers, products: products, cache: c}
}

func (r *CachedResolver) ResolveCustomerNames(ctx context.Context, ids []int64) map[int64]string {
	return r.resolve(ctx, "customer-name", ids, func(ctx context.Context, id int64) (string, error) {
		c, err := r.customers.GetCustomer(ctx, id)
		if err != nil {
			return "", err
		}
		return c.DisplayName(), nil
	})
}

func (r *CachedResolver) ResolveProductNames(ctx context.Context, ids []int64) map[int64]string {
	return r.resolve(ctx, "product-name", ids, func(ctx context.Context, id int64) (string, error) {
		p, err := r.products.GetProduct(ctx, id)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	})
}

func (r *CachedResolver) resolve(
	ctx context.Context,
	operation string,
	ids []int64,
	fetch func(ctx context.Context, id int64) (string, error),
) map[int64]string {
	out := make(map[int64]string, len(ids))

	var missing []int64
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		if name := r.cached(ctx, operation, id); name != "" {
			out[id] = name
			continue
		}
		out[id] = strconv.FormatInt(id, 10) // fallback until resolved
		missing = append(missing, id)
	}

	// Fire-and-collect: one lookup per missing id, no ordering guarantee
	// between them, the batch returns once all have settled.
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, id := range missing {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			name, err := fetch(ctx, id)
			if err != nil {
				slog.WarnContext(ctx, "name lookup failed", "operation", operation, "id", id, "error", err)
				return
			}
			mu.Lock()
			out[id] = name
			mu.Unlock()
			r.store(ctx, operation, id, name)
		}(id)
	}
	wg.Wait()

	return out
}

func (r *CachedResolver) cached(ctx context.Context, operation string, id int64) string {
	if r.cache == nil {
		return ""
	}
	key := r.cache.GenerateKey(operation, strconv.FormatInt(id, 10))
	name, err := r.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "name cache read failed", "key", key, "error", err)
		return ""
	}
	return name
}

func (r *CachedResolver) store(ctx context.Context, operation string, id int64, name string) {
	if r.cache == nil || name == "" {
		return
	}
	key := r.cache.GenerateKey(operation, strconv.FormatInt(id, 10))
	if err := r.cache.Set(ctx, key, name, nameTTL); err != nil {
		slog.WarnContext(ctx, "name cache write failed", "key", key, "error", err)
	}
}
