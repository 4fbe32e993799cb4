package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"booktrader/config"
	"booktrader/internal/domain/entity"
	domainerrors "booktrader/internal/domain/errors"
	"booktrader/internal/domain/service"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/pkg/errors"
)

const (
	dedupWait     = 2 * time.Millisecond
	dedupMaxBatch = 8
)

// client implements service.CatalogProvider against a Google-Books-shaped
// HTTP API. Search results bypass the cache; View is cache-first and
// collapses concurrent fetches for one id through a dataloader so a late
// duplicate fetch can never overwrite a newer cache entry.
type client struct {
	baseURL     string
	searchLimit int
	httpClient  *http.Client
	cache       service.EntityCache
	logger      *slog.Logger
	viewLoader  *dataloader.Loader[string, entity.CatalogEntity]
}

// NewClient is the constructor for the catalog adapter.
func NewClient(cfg *config.Config, entityCache service.EntityCache, logger *slog.Logger) service.CatalogProvider {
	c := &client{
		baseURL:     cfg.Catalog.BaseURL,
		searchLimit: cfg.Catalog.SearchLimit,
		httpClient: &http.Client{
			Timeout: cfg.Catalog.Timeout,
		},
		cache:  entityCache,
		logger: logger,
	}

	// The loader's own cache only dedupes in-flight fetches per id; View
	// clears the entry once resolved so the shared entity cache stays the
	// single long-lived cache.
	c.viewLoader = dataloader.NewBatchedLoader(
		c.fetchBatch,
		dataloader.WithWait[string, entity.CatalogEntity](dedupWait),
		dataloader.WithBatchCapacity[string, entity.CatalogEntity](dedupMaxBatch),
	)

	return c
}

// searchResponse is the provider's search envelope.
type searchResponse struct {
	Items []RawItem `json:"items"`
}

// Search issues one capped GET against the search endpoint and returns the
// normalized items in provider order. No retry, no fallback.
func (c *client) Search(ctx context.Context, query string) ([]entity.CatalogEntity, error) {
	endpoint := c.baseURL +
		"?maxResults=" + strconv.Itoa(c.searchLimit) +
		"&q=" + url.QueryEscape(query)

	var payload searchResponse
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	results := make([]entity.CatalogEntity, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, Normalize(item))
	}

	return results, nil
}

// View returns the entity for id, serving from the shared cache when
// present. A miss fetches through the dedup loader, normalizes, stores the
// result keyed (CatalogEntity, id) and returns it.
func (c *client) View(ctx context.Context, id string) (*entity.CatalogEntity, error) {
	key := c.cache.Key(entity.TypeCatalogEntity, id)
	if cached, ok := c.cache.Resolve(key); ok {
		if item, ok := cached.(*entity.CatalogEntity); ok {
			c.logger.Debug("catalog view served from cache", slog.String("id", id))

			return item, nil
		}
	}

	item, err := c.viewLoader.Load(ctx, id)()
	c.viewLoader.Clear(ctx, id)
	if err != nil {
		return nil, err
	}

	c.cache.Store(key, &item)

	return &item, nil
}

// fetchBatch resolves each id in the batch with its own GET; the loader has
// already collapsed duplicate ids.
func (c *client) fetchBatch(ctx context.Context, ids []string) []*dataloader.Result[entity.CatalogEntity] {
	results := make([]*dataloader.Result[entity.CatalogEntity], len(ids))
	for i, id := range ids {
		var raw RawItem
		if err := c.get(ctx, c.baseURL+"/"+url.PathEscape(id), &raw); err != nil {
			results[i] = &dataloader.Result[entity.CatalogEntity]{Error: err}

			continue
		}
		results[i] = &dataloader.Result[entity.CatalogEntity]{Data: Normalize(raw)}
	}

	return results
}

// get issues one GET and decodes the JSON body into out.
func (c *client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.WithStack(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed", slog.String("endpoint", endpoint), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrNetworkFailure, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrap(domainerrors.ErrCatalogNotFound, "catalog item not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("catalog returned non-success status",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
		)

		return errors.Wrapf(domainerrors.ErrNetworkFailure, "catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(domainerrors.ErrNetworkFailure, "decode catalog response")
	}

	return nil
}
