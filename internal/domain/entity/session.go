// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Session is the authenticated user's locally held identity. A Session
// exists iff a valid auth token is held; it is the sole authority for
// "logged in". A persisted Session must be revalidated against the trade
// gateway before it is trusted.
type Session struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Location  string `json:"location"`
	AuthToken string `json:"authToken"`
}

// Entity type tags used as the type half of a cache key.
const (
	TypeSession       = "Session"
	TypeCatalogEntity = "CatalogEntity"
)
