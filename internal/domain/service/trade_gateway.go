package service

import (
	"context"

	"booktrader/internal/domain/entity"
)

// CompositeBooks is the raw result of the gateway's composite read: two
// independent collections joined client-side by the trade usecase.
type CompositeBooks struct {
	CatalogIDs []entity.CatalogIDMapping
	Trades     []entity.TradeRecord
}

// TradeGateway is the remote relational mutation/query API, consumed as
// typed RPC operations. All calls propagate network and remote errors;
// none of them retries.
type TradeGateway interface {
	// Signup creates an account and returns the new authenticated session.
	Signup(ctx context.Context, name, email, location, password string) (*entity.Session, error)

	// Login exchanges credentials for an authenticated session.
	Login(ctx context.Context, email, password string) (*entity.Session, error)

	// LoginWithToken revalidates a stored token. Returns (nil, nil) when
	// the remote service no longer recognizes the token.
	LoginWithToken(ctx context.Context, token string) (*entity.Session, error)

	// Logout revokes the token remotely.
	Logout(ctx context.Context, token string) error

	// AddBook registers a physical copy offer for the catalog entity.
	AddBook(ctx context.Context, token, externalID string) (*entity.TradeRecord, error)

	// UpdateDetail updates one profile field of the authenticated user.
	UpdateDetail(ctx context.Context, token, key, value string) error

	// GetBooksAndCatalogIDs issues the one composite call returning the
	// catalog-id mapping list and the trade records scoped to userID.
	GetBooksAndCatalogIDs(ctx context.Context, userID int64) (*CompositeBooks, error)
}
