package impl

import (
	"context"
	"testing"

	"booktrader/internal/domain/entity"
	domainerrors "booktrader/internal/domain/errors"
	"booktrader/internal/domain/service"
	"booktrader/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeService_GetBooks_RequiresSession(t *testing.T) {
	svc := NewTradeService(&fakeGateway{}, newFakeCache(), discardLogger())

	_, err := svc.GetBooks(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestTradeService_GetBooks_JoinsExternalIDs(t *testing.T) {
	cache := newFakeCache()
	cache.putSession(storedSession())

	requester := int64(9)
	gateway := &fakeGateway{
		compositeFn: func(userID int64) (*service.CompositeBooks, error) {
			assert.Equal(t, int64(7), userID, "read is scoped to the session user")

			return &service.CompositeBooks{
				CatalogIDs: []entity.CatalogIDMapping{
					{InternalBookID: 11, ExternalID: "g1"},
					{InternalBookID: 12, ExternalID: "g2"},
				},
				Trades: []entity.TradeRecord{
					{ID: 3, InternalBookID: 12, OwnerUserID: 7, Status: 0, Timestamp: 1700000000},
					{ID: 4, InternalBookID: 11, OwnerUserID: 7, RequesterUserID: &requester, Status: 1, Timestamp: 1700000100},
				},
			}, nil
		},
	}
	svc := NewTradeService(gateway, cache, discardLogger())

	records, err := svc.GetBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "g2", records[0].ExternalID)
	assert.Equal(t, "g1", records[1].ExternalID)
	require.NotNil(t, records[1].RequesterUserID)
	assert.Equal(t, int64(9), *records[1].RequesterUserID)
}

func TestTradeService_GetBooks_UnmatchedRecordFailsWholeRead(t *testing.T) {
	cache := newFakeCache()
	cache.putSession(storedSession())

	gateway := &fakeGateway{
		compositeFn: func(int64) (*service.CompositeBooks, error) {
			return &service.CompositeBooks{
				CatalogIDs: []entity.CatalogIDMapping{{InternalBookID: 11, ExternalID: "g1"}},
				Trades: []entity.TradeRecord{
					{ID: 3, InternalBookID: 11},
					{ID: 4, InternalBookID: 99},
				},
			}, nil
		},
	}
	svc := NewTradeService(gateway, cache, discardLogger())

	records, err := svc.GetBooks(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrJoinIntegrity)
	assert.Nil(t, records, "no partial list on join failure")
}

func TestTradeService_GetBooks_GatewayFailurePropagates(t *testing.T) {
	cache := newFakeCache()
	cache.putSession(storedSession())

	gateway := &fakeGateway{
		compositeFn: func(int64) (*service.CompositeBooks, error) {
			return nil, domainerrors.ErrNetworkFailure
		},
	}
	svc := NewTradeService(gateway, cache, discardLogger())

	_, err := svc.GetBooks(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrNetworkFailure)
}

func TestTradeService_AddBook_UsesSessionToken(t *testing.T) {
	cache := newFakeCache()
	cache.putSession(storedSession())

	gateway := &fakeGateway{
		addBookFn: func(token, externalID string) (*entity.TradeRecord, error) {
			assert.Equal(t, "tok-1", token)
			assert.Equal(t, "g1", externalID)

			return &entity.TradeRecord{ID: 3, InternalBookID: 11, OwnerUserID: 7, ExternalID: "g1"}, nil
		},
	}
	svc := NewTradeService(gateway, cache, discardLogger())

	record, err := svc.AddBook(context.Background(), usecase.AddBookInput{ExternalID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, "g1", record.ExternalID)
}

func TestTradeService_AddBook_RequiresSession(t *testing.T) {
	svc := NewTradeService(&fakeGateway{}, newFakeCache(), discardLogger())

	_, err := svc.AddBook(context.Background(), usecase.AddBookInput{ExternalID: "g1"})

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
