// Package service defines interfaces for infrastructure services consumed
// by the application layer.
package service

// EntityCache is the shared cache of normalized entities, keyed by
// (entityType, id). It is written only by the catalog adapter after a
// successful fetch+normalize and by the session-update path; a cache hit
// must short-circuit any further fetch.
//
// The cache itself does not order writes by completion time; callers that
// can race on one key are responsible for collapsing duplicate in-flight
// fetches so a late result cannot overwrite a newer one.
type EntityCache interface {
	// Key computes the canonical cache key for (entityType, id).
	Key(entityType, id string) string

	// Resolve returns the cached entity for key, if present.
	Resolve(key string) (any, bool)

	// Store writes the entity under key, replacing any previous value.
	Store(key string, value any)

	// Delete removes the entity under key.
	Delete(key string)
}
