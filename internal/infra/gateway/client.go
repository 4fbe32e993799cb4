// Package gateway implements the typed RPC client for the remote
// relational trade service, spoken as GraphQL over HTTP.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"booktrader/config"
	"booktrader/internal/domain/entity"
	domainerrors "booktrader/internal/domain/errors"
	"booktrader/internal/domain/service"

	"github.com/pkg/errors"
)

// client implements service.TradeGateway. Every operation is one POST of
// {query, variables}; a non-2xx status or any entry in the response errors
// array rejects the operation. Nothing here retries.
type client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient is the constructor for the trade gateway.
func NewClient(cfg *config.Config, logger *slog.Logger) service.TradeGateway {
	return &client{
		endpoint: cfg.Trade.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Trade.Timeout,
		},
		logger: logger,
	}
}

// ---------------------------------------------------------------------------
// Wire envelope
// ---------------------------------------------------------------------------

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts one operation and decodes the data envelope into out.
func (c *client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("trade gateway request failed", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrNetworkFailure, "trade gateway request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("trade gateway returned non-success status", slog.Int("status", resp.StatusCode))

		return errors.Wrapf(domainerrors.ErrNetworkFailure, "trade gateway returned status %d", resp.StatusCode)
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrap(domainerrors.ErrNetworkFailure, "decode trade gateway response")
	}

	if len(envelope.Errors) > 0 {
		first := envelope.Errors[0]
		c.logger.Warn("trade gateway rejected operation",
			slog.String("message", first.Message),
			slog.String("code", first.Extensions.Code),
		)

		return errors.Wrap(domainerrors.ErrGatewayResponse, first.Message)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.Wrap(domainerrors.ErrNetworkFailure, "decode trade gateway data")
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Wire shapes (the remote service's field names)
// ---------------------------------------------------------------------------

type wireUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Loc   string `json:"loc"`
	Token string `json:"token"`
}

func (u *wireUser) toSession() *entity.Session {
	return &entity.Session{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Location:  u.Loc,
		AuthToken: u.Token,
	}
}

type wireTrade struct {
	ID     int64  `json:"id"`
	BID    int64  `json:"bid"`
	UID    int64  `json:"uid"`
	RID    *int64 `json:"rid"`
	Status int    `json:"status"`
	TS     int64  `json:"ts"`
}

func (t *wireTrade) toTradeRecord() entity.TradeRecord {
	return entity.TradeRecord{
		ID:              t.ID,
		InternalBookID:  t.BID,
		OwnerUserID:     t.UID,
		RequesterUserID: t.RID,
		Status:          t.Status,
		Timestamp:       t.TS,
	}
}

type wireCatalogID struct {
	ID  int64  `json:"id"`
	GID string `json:"gid"`
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

const (
	signupQuery = `mutation signup($name: String!, $email: String!, $loc: String, $pw: String!) {
  signup(name: $name, email: $email, loc: $loc, pw: $pw) { id name email loc token }
}`

	loginQuery = `mutation login($email: String!, $pw: String!) {
  login(email: $email, pw: $pw) { id name email loc token }
}`

	loginWithTokenQuery = `mutation loginWithToken($token: String!) {
  loginWithToken(token: $token) { id name email loc }
}`

	logoutQuery = `mutation logout($token: String!) { logout(token: $token) }`

	addBookQuery = `mutation addBook($token: String!, $gid: String!) {
  addBook(token: $token, gid: $gid) { id bid uid rid status ts }
}`

	updateDetailQuery = `mutation updateDetail($token: String!, $key: UserDetail!, $value: String!) {
  updateDetail(token: $token, key: $key, value: $value)
}`

	booksAndCatalogIDsQuery = `query getBooksAndGBooks($uid: Int) {
  getGBooks { id gid }
  getBooks(uid: $uid) { id bid uid rid status ts }
}`
)

// Signup creates an account and returns the new authenticated session.
func (c *client) Signup(ctx context.Context, name, email, location, password string) (*entity.Session, error) {
	var payload struct {
		Signup wireUser `json:"signup"`
	}
	err := c.do(ctx, signupQuery, map[string]any{
		"name": name, "email": email, "loc": location, "pw": password,
	}, &payload)
	if err != nil {
		return nil, errors.Wrap(err, "signup failed")
	}

	return payload.Signup.toSession(), nil
}

// Login exchanges credentials for an authenticated session.
func (c *client) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	var payload struct {
		Login wireUser `json:"login"`
	}
	err := c.do(ctx, loginQuery, map[string]any{"email": email, "pw": password}, &payload)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	return payload.Login.toSession(), nil
}

// LoginWithToken revalidates a stored token. The remote operation carries
// no token in its result; callers merge the stored token back. Returns
// (nil, nil) when the token is no longer recognized.
func (c *client) LoginWithToken(ctx context.Context, token string) (*entity.Session, error) {
	var payload struct {
		LoginWithToken *wireUser `json:"loginWithToken"`
	}
	err := c.do(ctx, loginWithTokenQuery, map[string]any{"token": token}, &payload)
	if err != nil {
		return nil, errors.Wrap(err, "token revalidation failed")
	}
	if payload.LoginWithToken == nil {
		return nil, nil
	}

	return payload.LoginWithToken.toSession(), nil
}

// Logout revokes the token remotely.
func (c *client) Logout(ctx context.Context, token string) error {
	if err := c.do(ctx, logoutQuery, map[string]any{"token": token}, nil); err != nil {
		return errors.Wrap(err, "logout failed")
	}

	return nil
}

// AddBook registers a physical copy offer for the catalog entity.
func (c *client) AddBook(ctx context.Context, token, externalID string) (*entity.TradeRecord, error) {
	var payload struct {
		AddBook wireTrade `json:"addBook"`
	}
	err := c.do(ctx, addBookQuery, map[string]any{"token": token, "gid": externalID}, &payload)
	if err != nil {
		return nil, errors.Wrap(err, "add book failed")
	}

	record := payload.AddBook.toTradeRecord()
	record.ExternalID = externalID

	return &record, nil
}

// UpdateDetail updates one profile field of the authenticated user.
func (c *client) UpdateDetail(ctx context.Context, token, key, value string) error {
	err := c.do(ctx, updateDetailQuery, map[string]any{"token": token, "key": key, "value": value}, nil)
	if err != nil {
		return errors.Wrap(err, "update detail failed")
	}

	return nil
}

// GetBooksAndCatalogIDs issues the one composite call returning the
// catalog-id mapping list and the trade records scoped to userID. The two
// collections are returned as-is; the strict join belongs to the caller.
func (c *client) GetBooksAndCatalogIDs(ctx context.Context, userID int64) (*service.CompositeBooks, error) {
	var payload struct {
		GetGBooks []wireCatalogID `json:"getGBooks"`
		GetBooks  []wireTrade     `json:"getBooks"`
	}
	err := c.do(ctx, booksAndCatalogIDsQuery, map[string]any{"uid": userID}, &payload)
	if err != nil {
		return nil, errors.Wrap(err, "composite books read failed")
	}

	composite := &service.CompositeBooks{
		CatalogIDs: make([]entity.CatalogIDMapping, 0, len(payload.GetGBooks)),
		Trades:     make([]entity.TradeRecord, 0, len(payload.GetBooks)),
	}
	for _, mapping := range payload.GetGBooks {
		composite.CatalogIDs = append(composite.CatalogIDs, entity.CatalogIDMapping{
			InternalBookID: mapping.ID,
			ExternalID:     mapping.GID,
		})
	}
	for _, trade := range payload.GetBooks {
		composite.Trades = append(composite.Trades, trade.toTradeRecord())
	}

	return composite, nil
}
