package impl

import (
	"context"
	"log/slog"

	deliverycontext "booktrader/internal/delivery/context"
	"booktrader/internal/domain/entity"
	"booktrader/internal/domain/service"
	"booktrader/internal/usecase"

	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface. The adapter owns
// normalization and caching; this layer only adds request-scoped logging.
type catalogService struct {
	provider service.CatalogProvider
	logger   *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(provider service.CatalogProvider, logger *slog.Logger) usecase.CatalogUsecase {
	return &catalogService{
		provider: provider,
		logger:   logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Search forwards one capped search to the catalog provider.
func (srv *catalogService) Search(ctx context.Context, input usecase.SearchCatalogInput) ([]entity.CatalogEntity, error) {
	results, err := srv.provider.Search(ctx, input.Query)
	if err != nil {
		srv.log(ctx).Error("catalog search failed", slog.String("query", input.Query), slog.Any("error", err))

		return nil, errors.Wrap(err, "catalog search failed")
	}

	srv.log(ctx).Debug("catalog search resolved",
		slog.String("query", input.Query),
		slog.Int("results", len(results)),
	)

	return results, nil
}

// View resolves one catalog entity by external id.
func (srv *catalogService) View(ctx context.Context, input usecase.ViewCatalogInput) (*entity.CatalogEntity, error) {
	item, err := srv.provider.View(ctx, input.ID)
	if err != nil {
		srv.log(ctx).Error("catalog view failed", slog.String("id", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "catalog view failed")
	}

	return item, nil
}
