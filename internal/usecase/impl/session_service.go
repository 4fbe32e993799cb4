// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strconv"

	deliverycontext "booktrader/internal/delivery/context"
	"booktrader/internal/domain/entity"
	domainerrors "booktrader/internal/domain/errors"
	"booktrader/internal/domain/repository"
	"booktrader/internal/domain/service"
	"booktrader/internal/usecase"

	"github.com/pkg/errors"
)

// sessionCacheID is the id segment of the single cached session entry.
const sessionCacheID = "current"

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	store   repository.SessionStore
	gateway service.TradeGateway
	cache   service.EntityCache
	logger  *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	store repository.SessionStore,
	gateway service.TradeGateway,
	cache service.EntityCache,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		store:   store,
		gateway: gateway,
		cache:   cache,
		logger:  logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LocalUser resolves the current session. Every failure mode collapses to
// nil: no persisted session, storage errors, network failures during
// revalidation, and tokens the remote no longer recognizes. A rejected
// token is left in storage untouched.
func (srv *sessionService) LocalUser(ctx context.Context) *entity.Session {
	stored, err := srv.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			srv.log(ctx).Warn("session load failed", slog.Any("error", err))
		}

		return nil
	}

	revalidated, err := srv.gateway.LoginWithToken(ctx, stored.AuthToken)
	if err != nil {
		srv.log(ctx).Warn("token revalidation failed", slog.Any("error", err))

		return nil
	}
	if revalidated == nil {
		srv.log(ctx).Debug("stored token no longer recognized")

		return nil
	}

	// The revalidation result carries no token; merge the stored one back
	// so the session stays usable for authenticated mutations.
	revalidated.AuthToken = stored.AuthToken
	srv.cacheSession(revalidated)

	return revalidated
}

// Signup creates a remote account and adopts the returned session locally.
func (srv *sessionService) Signup(ctx context.Context, input usecase.SignupInput) (*entity.Session, error) {
	session, err := srv.gateway.Signup(ctx, input.Name, input.Email, input.Location, input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "signup failed")
	}

	srv.adoptSession(ctx, session)

	return session, nil
}

// Login exchanges credentials for a session and adopts it locally.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*entity.Session, error) {
	session, err := srv.gateway.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	srv.adoptSession(ctx, session)

	return session, nil
}

// UpdateLocalUser replaces or discards the local session. The logout
// branch fires the remote revocation without waiting on its outcome, then
// clears local state; both branches swallow storage failures so the
// operation always resolves.
func (srv *sessionService) UpdateLocalUser(ctx context.Context, input usecase.UpdateLocalUserInput) error {
	if input.Logout {
		token := input.AuthToken
		if token == "" {
			if current, ok := currentSession(srv.cache); ok {
				token = current.AuthToken
			}
		}
		if token != "" {
			// Fire-and-forget: the local session dies regardless of what
			// the remote says.
			if err := srv.gateway.Logout(ctx, token); err != nil {
				srv.log(ctx).Warn("remote logout failed", slog.Any("error", err))
			}
		}

		if err := srv.store.Clear(ctx); err != nil {
			srv.log(ctx).Warn("session clear failed", slog.Any("error", err))
		}
		srv.cache.Delete(srv.cache.Key(entity.TypeSession, sessionCacheID))

		return nil
	}

	session := &entity.Session{
		ID:        input.ID,
		Name:      input.Name,
		Email:     input.Email,
		Location:  input.Location,
		AuthToken: input.AuthToken,
	}
	srv.adoptSession(ctx, session)

	return nil
}

// UpdateDetail changes one profile field remotely, then refreshes the
// cached session so local reads observe the change.
func (srv *sessionService) UpdateDetail(ctx context.Context, input usecase.UpdateDetailInput) error {
	current, ok := currentSession(srv.cache)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no active session")
	}

	if err := srv.gateway.UpdateDetail(ctx, current.AuthToken, input.Key, input.Value); err != nil {
		return errors.Wrap(err, "update detail failed")
	}

	updated := *current
	switch input.Key {
	case "name":
		updated.Name = input.Value
	case "loc":
		updated.Location = input.Value
	}
	srv.adoptSession(ctx, &updated)

	return nil
}

// adoptSession persists the session and writes it through to the cache.
// Storage failures are logged and swallowed.
func (srv *sessionService) adoptSession(ctx context.Context, session *entity.Session) {
	if err := srv.store.Save(ctx, session); err != nil {
		srv.log(ctx).Warn("session save failed",
			slog.String("user_id", strconv.FormatInt(session.ID, 10)),
			slog.Any("error", err),
		)
	}
	srv.cacheSession(session)
}

func (srv *sessionService) cacheSession(session *entity.Session) {
	srv.cache.Store(srv.cache.Key(entity.TypeSession, sessionCacheID), session)
}

// currentSession reads the cached session entry. It is the only way the
// services observe "signed in right now" without touching storage.
func currentSession(cache service.EntityCache) (*entity.Session, bool) {
	cached, ok := cache.Resolve(cache.Key(entity.TypeSession, sessionCacheID))
	if !ok {
		return nil, false
	}
	session, ok := cached.(*entity.Session)

	return session, ok
}
