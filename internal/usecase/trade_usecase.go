package usecase

import (
	"context"

	"booktrader/internal/domain/entity"
)

// AddBookInput registers a physical copy offer for one catalog entity.
type AddBookInput struct {
	ExternalID string `json:"externalId" mapstructure:"externalId" validate:"required"`
}

// TradeUsecase defines the trade-record operations scoped to the
// authenticated session.
type TradeUsecase interface {
	// GetBooks returns the session user's trade records, each carrying the
	// external catalog id resolved from the remote mapping list. One
	// unmatched record fails the whole read.
	GetBooks(ctx context.Context) ([]entity.TradeRecord, error)

	AddBook(ctx context.Context, input AddBookInput) (*entity.TradeRecord, error)
}
