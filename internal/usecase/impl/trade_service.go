package impl

import (
	"context"
	"log/slog"

	deliverycontext "booktrader/internal/delivery/context"
	"booktrader/internal/domain/entity"
	domainerrors "booktrader/internal/domain/errors"
	"booktrader/internal/domain/service"
	"booktrader/internal/usecase"

	"github.com/pkg/errors"
)

// tradeService implements the TradeUsecase interface.
type tradeService struct {
	gateway service.TradeGateway
	cache   service.EntityCache
	logger  *slog.Logger
}

// NewTradeService is the constructor for tradeService.
func NewTradeService(
	gateway service.TradeGateway,
	cache service.EntityCache,
	logger *slog.Logger,
) usecase.TradeUsecase {
	return &tradeService{
		gateway: gateway,
		cache:   cache,
		logger:  logger,
	}
}

func (srv *tradeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetBooks reads the composite trade payload scoped to the session user and
// joins each trade record to its external catalog id. The join is strict: a
// record whose internal book id has no mapping fails the whole read rather
// than surfacing a partially identified list.
func (srv *tradeService) GetBooks(ctx context.Context) ([]entity.TradeRecord, error) {
	session, ok := currentSession(srv.cache)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no active session")
	}

	composite, err := srv.gateway.GetBooksAndCatalogIDs(ctx, session.ID)
	if err != nil {
		srv.log(ctx).Error("composite books read failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "get books failed")
	}

	byBookID := make(map[int64]string, len(composite.CatalogIDs))
	for _, mapping := range composite.CatalogIDs {
		byBookID[mapping.InternalBookID] = mapping.ExternalID
	}

	records := make([]entity.TradeRecord, 0, len(composite.Trades))
	for _, trade := range composite.Trades {
		externalID, ok := byBookID[trade.InternalBookID]
		if !ok {
			srv.log(ctx).Error("trade record has no catalog mapping",
				slog.Int64("trade_id", trade.ID),
				slog.Int64("book_id", trade.InternalBookID),
			)

			return nil, errors.Wrapf(domainerrors.ErrJoinIntegrity,
				"no catalog mapping for book %d", trade.InternalBookID)
		}
		trade.ExternalID = externalID
		records = append(records, trade)
	}

	return records, nil
}

// AddBook registers a copy offer under the session user's token.
func (srv *tradeService) AddBook(ctx context.Context, input usecase.AddBookInput) (*entity.TradeRecord, error) {
	session, ok := currentSession(srv.cache)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no active session")
	}

	record, err := srv.gateway.AddBook(ctx, session.AuthToken, input.ExternalID)
	if err != nil {
		srv.log(ctx).Error("add book failed", slog.String("external_id", input.ExternalID), slog.Any("error", err))

		return nil, errors.Wrap(err, "add book failed")
	}

	return record, nil
}
