package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"booktrader/internal/domain/entity"
	"booktrader/internal/domain/repository"
	"booktrader/internal/domain/service"

	"github.com/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCache is a map-backed EntityCache for service tests.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]any)}
}

func (c *fakeCache) Key(entityType, id string) string { return entityType + ":" + id }

func (c *fakeCache) Resolve(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]

	return v, ok
}

func (c *fakeCache) Store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *fakeCache) putSession(session *entity.Session) {
	c.Store(c.Key(entity.TypeSession, sessionCacheID), session)
}

func (c *fakeCache) getSession() (*entity.Session, bool) {
	v, ok := c.Resolve(c.Key(entity.TypeSession, sessionCacheID))
	if !ok {
		return nil, false
	}
	session, ok := v.(*entity.Session)

	return session, ok
}

// fakeStore is an in-memory SessionStore with injectable failures.
type fakeStore struct {
	mu       sync.Mutex
	session  *entity.Session
	loadErr  error
	saveErr  error
	clearErr error

	saveCalls  int
	clearCalls int
}

func (s *fakeStore) Load(_ context.Context) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.session == nil {
		return nil, repository.ErrSessionNotFound
	}

	return s.session, nil
}

func (s *fakeStore) Save(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.session = session

	return nil
}

func (s *fakeStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCalls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.session = nil

	return nil
}

// fakeGateway is a TradeGateway whose behavior is set per test through
// function fields; an unset field rejects the call.
type fakeGateway struct {
	mu sync.Mutex

	signupFn         func(name, email, location, password string) (*entity.Session, error)
	loginFn          func(email, password string) (*entity.Session, error)
	loginWithTokenFn func(token string) (*entity.Session, error)
	logoutErr        error
	addBookFn        func(token, externalID string) (*entity.TradeRecord, error)
	updateDetailFn   func(token, key, value string) error
	compositeFn      func(userID int64) (*service.CompositeBooks, error)

	logoutTokens []string
}

var errUnexpectedCall = errors.New("unexpected gateway call")

func (g *fakeGateway) Signup(_ context.Context, name, email, location, password string) (*entity.Session, error) {
	if g.signupFn == nil {
		return nil, errUnexpectedCall
	}

	return g.signupFn(name, email, location, password)
}

func (g *fakeGateway) Login(_ context.Context, email, password string) (*entity.Session, error) {
	if g.loginFn == nil {
		return nil, errUnexpectedCall
	}

	return g.loginFn(email, password)
}

func (g *fakeGateway) LoginWithToken(_ context.Context, token string) (*entity.Session, error) {
	if g.loginWithTokenFn == nil {
		return nil, errUnexpectedCall
	}

	return g.loginWithTokenFn(token)
}

func (g *fakeGateway) Logout(_ context.Context, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logoutTokens = append(g.logoutTokens, token)

	return g.logoutErr
}

func (g *fakeGateway) AddBook(_ context.Context, token, externalID string) (*entity.TradeRecord, error) {
	if g.addBookFn == nil {
		return nil, errUnexpectedCall
	}

	return g.addBookFn(token, externalID)
}

func (g *fakeGateway) UpdateDetail(_ context.Context, token, key, value string) error {
	if g.updateDetailFn == nil {
		return errUnexpectedCall
	}

	return g.updateDetailFn(token, key, value)
}

func (g *fakeGateway) GetBooksAndCatalogIDs(_ context.Context, userID int64) (*service.CompositeBooks, error) {
	if g.compositeFn == nil {
		return nil, errUnexpectedCall
	}

	return g.compositeFn(userID)
}
