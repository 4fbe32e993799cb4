package usecase

import (
	"context"

	"booktrader/internal/domain/entity"
)

// SearchCatalogInput defines the arguments of a catalog search.
type SearchCatalogInput struct {
	Query string `json:"query" mapstructure:"query" validate:"required"`
}

// ViewCatalogInput defines the arguments of a single-entity catalog read.
type ViewCatalogInput struct {
	ID string `json:"id" mapstructure:"id" validate:"required"`
}

// CatalogUsecase defines read operations against the remote catalog.
type CatalogUsecase interface {
	Search(ctx context.Context, input SearchCatalogInput) ([]entity.CatalogEntity, error)
	View(ctx context.Context, input ViewCatalogInput) (*entity.CatalogEntity, error)
}
