package service

import (
	"context"

	"booktrader/internal/domain/entity"
)

// CatalogProvider is the remote read-only catalog API. Results are always
// normalized CatalogEntity values; provider ordering is preserved.
type CatalogProvider interface {
	// Search issues a capped search query and returns normalized entities
	// in provider order. No retry, no fallback.
	Search(ctx context.Context, query string) ([]entity.CatalogEntity, error)

	// View fetches a single entity by external id. Served from the shared
	// cache when present; a miss fetches, normalizes, caches and returns.
	View(ctx context.Context, id string) (*entity.CatalogEntity, error)
}
