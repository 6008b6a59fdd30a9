// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/bookshelf/internal/platform/config"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/platform/metrics"
)

// Operation labels used in logs, metrics and cache keys.
const (
	opSearch     = "search"
	opPopular    = "popular"
	opByCategory = "by_category"
	opDetail     = "detail"
)

// maxBodyBytes caps a single catalog response.
const maxBodyBytes = 4 << 20

// # Client

// Client issues strict requests against the remote volume-search service.
//
// It holds no mutable state besides the rate limiter, so concurrent calls are
// independent. Every method returns an error on failure; see [Service] for
// the degrading variant.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
	metrics    *metrics.Metrics
}

// Option customises a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (tests inject a mock transport here).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(client *Client) { client.metrics = m }
}

// WithBackoff sets the base delay between retries. It doubles on every attempt.
func WithBackoff(base time.Duration) Option {
	return func(client *Client) { client.backoff = base }
}

// NewClient builds a catalog client from configuration.
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	burst := int(cfg.RPS)
	if burst < 1 {
		burst = 1
	}

	client := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RPS), burst),
		maxRetries: cfg.MaxRetries,
		backoff:    500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// # Field Selection

// DetailFields is the field selection sent with a single-volume request.
func DetailFields() string {
	return keyID +
		"," + keyVolumeInfo + "(" + strings.Join(volumeInfoKeys, ",") + ")" +
		"," + keyAccessInfo + "(" + strings.Join(accessInfoKeys, ",") + ")"
}

// ListFields is the field selection sent with list requests.
func ListFields() string {
	return "items(" + DetailFields() + ")"
}

// # Operations

// Search runs a free-text query, relevance ordered, books only, up to 20 results.
// A blank query returns an empty slice without a request.
func (client *Client) Search(ctx context.Context, query string) ([]Book, error) {
	return client.list(ctx, opSearch, query, constants.SearchPageSize)
}

// Popular returns the canned "popular" shelf.
func (client *Client) Popular(ctx context.Context) ([]Book, error) {
	return client.list(ctx, opPopular, constants.PopularQuery, constants.ListPageSize)
}

// ByCategory runs a category query such as "subject:fiction".
//
// It fails closed: a blank query returns an empty slice without a request.
func (client *Client) ByCategory(ctx context.Context, categoryQuery string) ([]Book, error) {
	return client.list(ctx, opByCategory, categoryQuery, constants.ListPageSize)
}

// Detail fetches one volume and merges it over base (see [Merge]).
func (client *Client) Detail(ctx context.Context, id string, base *Book) (Book, error) {
	if strings.TrimSpace(id) == "" {
		return Book{}, ErrBlankID
	}

	params := url.Values{}
	params.Set("fields", DetailFields())

	var raw Raw
	if err := client.get(ctx, opDetail, client.baseURL+"/"+url.PathEscape(id), params, &raw); err != nil {
		return Book{}, err
	}

	return Merge(base, Normalize(raw), id), nil
}

func (client *Client) list(ctx context.Context, operation, query string, maxResults int) ([]Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Book{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("printType", constants.PrintTypeBooks)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("orderBy", constants.OrderByRelevance)
	params.Set("fields", ListFields())

	var page struct {
		Items []any `json:"items"`
	}
	if err := client.get(ctx, operation, client.baseURL, params, &page); err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(page.Items))
	for _, item := range page.Items {
		if raw, ok := item.(map[string]any); ok {
			books = append(books, Normalize(raw))
		}
	}

	return books, nil
}

// # Transport

// get performs a GET with rate limiting and bounded retries on 429, 5xx and
// transport failures. The API key is appended to every request.
func (client *Client) get(ctx context.Context, operation, endpoint string, params url.Values, target any) error {
	if client.apiKey != "" {
		params.Set("key", client.apiKey)
	}
	requestURL := endpoint + "?" + params.Encode()

	var lastErr *RequestError
	for attempt := 0; attempt <= client.maxRetries; attempt++ {
		if attempt > 0 {
			client.metrics.IncCatalogRetry()
			delay := client.backoff * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return classifyError(ctx.Err(), 0)
			}
		}

		if err := client.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return classifyError(ctx.Err(), 0)
			}
			return &RequestError{Kind: KindRateLimited, Err: err}
		}

		lastErr = client.do(ctx, operation, requestURL, target)
		if lastErr == nil {
			return nil
		}

		client.metrics.IncCatalogError(operation, string(lastErr.Kind))
		if !lastErr.Retryable() {
			return lastErr
		}
	}

	return fmt.Errorf("catalog: %s failed after %d retries: %w", operation, client.maxRetries, lastErr)
}

func (client *Client) do(ctx context.Context, operation, requestURL string, target any) *RequestError {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &RequestError{Kind: KindUnknown, Err: err}
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)

	client.metrics.IncCatalogRequest(operation)
	started := time.Now()
	response, err := client.httpClient.Do(request)
	client.metrics.ObserveCatalogDuration(operation, time.Since(started))
	if err != nil {
		return classifyError(err, 0)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodyBytes))
		return classifyError(nil, response.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(response.Body, maxBodyBytes)).Decode(target); err != nil {
		return &RequestError{Kind: KindDecode, Err: err}
	}

	return nil
}
