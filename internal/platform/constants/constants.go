// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Catalog: Page sizes and the canned queries sent to the volume service.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bookshelf-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 20 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 15 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// MaxRequestBodyBytes caps JSON payloads accepted by write endpoints.
	MaxRequestBodyBytes = 1 << 20
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Catalog

const (
	// SearchPageSize is the maxResults sent with free-text searches.
	SearchPageSize = 20

	// ListPageSize is the maxResults sent with popular and category listings.
	ListPageSize = 10

	// PopularQuery is the canned query behind the popular shelf.
	PopularQuery = "subject:general"

	// GenericQuery is the broad query the "other" category filters down.
	GenericQuery = "books"

	// PrintTypeBooks restricts results to books (no magazines).
	PrintTypeBooks = "books"

	// OrderByRelevance keeps the remote relevance ranking.
	OrderByRelevance = "relevance"

	// UntitledPlaceholder is the title given to records without one.
	UntitledPlaceholder = "Untitled"
)

// # Authentication

const (
	// AuthIssuer is the default 'iss' claim expected in bearer tokens.
	AuthIssuer = "bookshelf.app"
)

// # HTTP Headers

const (
	HeaderXRequestID       = "X-Request-ID"
	HeaderXRealIP          = "X-Real-IP"
	HeaderXForwardedFor    = "X-Forwarded-For"
	HeaderOrigin           = "Origin"
	HeaderAuthorization    = "Authorization"
	HeaderXDeviceID        = "X-Device-ID"
	HeaderXCatalogDegraded = "X-Catalog-Degraded"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaLibrary = "library"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixGuestFavorites = "favorites:guest:"
)
