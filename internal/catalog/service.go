// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/taibuivan/bookshelf/internal/platform/ctxutil"
	"github.com/taibuivan/bookshelf/internal/platform/metrics"
)

// Source is the strict catalog API the [Service] degrades over. [*Client] implements it.
type Source interface {
	Search(ctx context.Context, query string) ([]Book, error)
	Popular(ctx context.Context) ([]Book, error)
	ByCategory(ctx context.Context, categoryQuery string) ([]Book, error)
	Detail(ctx context.Context, id string, base *Book) (Book, error)
}

// Result carries a value that is always safe to render plus the failure, if
// any, that forced a fallback.
type Result[T any] struct {
	Value T
	Err   error
}

// Degraded reports whether Value is a fallback rather than a real answer.
func (result Result[T]) Degraded() bool {
	return result.Err != nil
}

// # Service

// Service is the best-effort catalog facade.
//
// # Failure Policy
//
//   - List operations fall back to an empty slice.
//   - Detail falls back to the caller's base book, or nil without one.
//
// Failures are logged and counted, never returned as an error. Successful
// list responses are cached; fallbacks never are.
type Service struct {
	source  Source
	cache   *expirable.LRU[string, []Book]
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService wraps source. A non-positive cacheSize disables caching.
func NewService(source Source, cacheSize int, cacheTTL time.Duration, logger *slog.Logger, m *metrics.Metrics) *Service {
	service := &Service{
		source:  source,
		logger:  logger,
		metrics: m,
	}

	if cacheSize > 0 {
		service.cache = expirable.NewLRU[string, []Book](cacheSize, nil, cacheTTL)
	}

	return service
}

// Search returns up to 20 books for query. A blank query yields an empty result without I/O.
func (service *Service) Search(ctx context.Context, query string) Result[[]Book] {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result[[]Book]{Value: []Book{}}
	}
	return service.list(ctx, opSearch, query, func(ctx context.Context) ([]Book, error) {
		return service.source.Search(ctx, query)
	})
}

// Popular returns the popular shelf.
func (service *Service) Popular(ctx context.Context) Result[[]Book] {
	return service.list(ctx, opPopular, "", service.source.Popular)
}

// ByCategory returns books for a raw category query.
// A blank query yields an empty result without I/O.
func (service *Service) ByCategory(ctx context.Context, categoryQuery string) Result[[]Book] {
	categoryQuery = strings.TrimSpace(categoryQuery)
	if categoryQuery == "" {
		service.logger.WarnContext(ctx, "catalog_blank_category_query",
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		return Result[[]Book]{Value: []Book{}}
	}
	return service.list(ctx, opByCategory, categoryQuery, func(ctx context.Context) ([]Book, error) {
		return service.source.ByCategory(ctx, categoryQuery)
	})
}

// Detail completes base with the remote record for id.
//
// On failure it returns base unchanged, which is nil when no base was given.
// A blank id returns base without I/O.
func (service *Service) Detail(ctx context.Context, id string, base *Book) Result[*Book] {
	id = strings.TrimSpace(id)
	if id == "" {
		return Result[*Book]{Value: base}
	}

	book, err := service.source.Detail(ctx, id, base)
	if err != nil {
		service.degrade(ctx, opDetail, id, err)
		return Result[*Book]{Value: base, Err: err}
	}

	return Result[*Book]{Value: &book}
}

// # Internal Helpers

func (service *Service) list(ctx context.Context, operation, query string, fetch func(context.Context) ([]Book, error)) Result[[]Book] {
	key := operation + ":" + query

	if service.cache != nil {
		cached, ok := service.cache.Get(key)
		service.metrics.IncCacheLookup(ok)
		if ok {
			return Result[[]Book]{Value: slices.Clone(cached)}
		}
	}

	books, err := fetch(ctx)
	if err != nil {
		service.degrade(ctx, operation, query, err)
		return Result[[]Book]{Value: []Book{}, Err: err}
	}

	if service.cache != nil {
		service.cache.Add(key, slices.Clone(books))
	}

	return Result[[]Book]{Value: books}
}

func (service *Service) degrade(ctx context.Context, operation, subject string, err error) {
	service.metrics.IncDegraded(operation)
	service.logger.WarnContext(ctx, "catalog_request_failed",
		slog.String("operation", operation),
		slog.String("subject", subject),
		slog.String("error_type", string(KindOf(err))),
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
		slog.Any("error", err),
	)
}
