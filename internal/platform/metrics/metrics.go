// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics bundles the Prometheus collectors exported on /metrics.

All collectors live on a dedicated registry so tests can build as many
[Metrics] values as they like without tripping duplicate registration.

Every recording method is safe to call on a nil *Metrics, which lets domain
services treat instrumentation as optional.
*/
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles Prometheus collectors for the catalog and favorites domains.
type Metrics struct {
	Registry *prometheus.Registry

	CatalogRequestsTotal   *prometheus.CounterVec
	CatalogRequestDuration *prometheus.HistogramVec
	CatalogErrorsTotal     *prometheus.CounterVec
	CatalogRetriesTotal    prometheus.Counter
	CatalogCacheTotal      *prometheus.CounterVec
	CatalogDegradedTotal   *prometheus.CounterVec

	FavoritesOperationsTotal *prometheus.CounterVec
	FavoritesConflictsTotal  prometheus.Counter
	FavoritesStorageErrors   *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	catalogRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total HTTP requests issued to the remote catalog.",
		},
		[]string{"operation"},
	)
	catalogDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Remote catalog request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	catalogErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_errors_total",
			Help: "Remote catalog failures by classified type.",
		},
		[]string{"operation", "error_type"},
	)
	catalogRetries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_retries_total",
			Help: "Total number of catalog retry attempts scheduled.",
		},
	)
	catalogCache := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog response cache lookups by result.",
		},
		[]string{"result"},
	)
	catalogDegraded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_degraded_results_total",
			Help: "Catalog calls answered with a fallback value after a failure.",
		},
		[]string{"operation"},
	)
	favoritesOps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_operations_total",
			Help: "Favorites operations by action and backend.",
		},
		[]string{"action", "backend"},
	)
	favoritesConflicts := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "favorites_write_conflicts_total",
			Help: "Optimistic guest writes retried after a concurrent change.",
		},
	)
	favoritesStorage := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_storage_errors_total",
			Help: "Favorites storage failures by action and backend.",
		},
		[]string{"action", "backend"},
	)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		catalogRequests, catalogDuration, catalogErrors, catalogRetries, catalogCache, catalogDegraded,
		favoritesOps, favoritesConflicts, favoritesStorage,
	)

	return &Metrics{
		Registry:                 registry,
		CatalogRequestsTotal:     catalogRequests,
		CatalogRequestDuration:   catalogDuration,
		CatalogErrorsTotal:       catalogErrors,
		CatalogRetriesTotal:      catalogRetries,
		CatalogCacheTotal:        catalogCache,
		CatalogDegradedTotal:     catalogDegraded,
		FavoritesOperationsTotal: favoritesOps,
		FavoritesConflictsTotal:  favoritesConflicts,
		FavoritesStorageErrors:   favoritesStorage,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// IncCatalogRequest counts one outbound catalog HTTP attempt.
func (m *Metrics) IncCatalogRequest(operation string) {
	if m == nil {
		return
	}
	m.CatalogRequestsTotal.WithLabelValues(operation).Inc()
}

// ObserveCatalogDuration records an outbound catalog request duration.
func (m *Metrics) ObserveCatalogDuration(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.CatalogRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncCatalogError increments the catalog errors counter for a type label.
func (m *Metrics) IncCatalogError(operation, errorType string) {
	if m == nil {
		return
	}
	m.CatalogErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// IncCatalogRetry increments the catalog retries counter.
func (m *Metrics) IncCatalogRetry() {
	if m == nil {
		return
	}
	m.CatalogRetriesTotal.Inc()
}

// IncCacheLookup records a cache "hit" or "miss".
func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CatalogCacheTotal.WithLabelValues(result).Inc()
}

// IncDegraded counts a catalog call that fell back to an empty or base value.
func (m *Metrics) IncDegraded(operation string) {
	if m == nil {
		return
	}
	m.CatalogDegradedTotal.WithLabelValues(operation).Inc()
}

// IncFavoritesOp counts a favorites action against a backend ("guest" or "cloud").
func (m *Metrics) IncFavoritesOp(action, backend string) {
	if m == nil {
		return
	}
	m.FavoritesOperationsTotal.WithLabelValues(action, backend).Inc()
}

// IncFavoritesConflict counts an optimistic guest write that had to retry.
func (m *Metrics) IncFavoritesConflict() {
	if m == nil {
		return
	}
	m.FavoritesConflictsTotal.Inc()
}

// IncFavoritesStorageError counts a failed favorites storage call.
func (m *Metrics) IncFavoritesStorageError(action, backend string) {
	if m == nil {
		return
	}
	m.FavoritesStorageErrors.WithLabelValues(action, backend).Inc()
}
