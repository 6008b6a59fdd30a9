// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog browsing.
//
// Catalog endpoints never answer 5xx for an upstream failure. A fallback
// value is served with 200 and the X-Catalog-Degraded header set.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /books endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listByCategoryQuery)
	router.Get("/search", handler.search)
	router.Get("/popular", handler.popular)
	router.Get("/{id}", handler.detail)
	router.Post("/{id}/hydrate", handler.hydrate)

	return router
}

// CategoryRoutes returns the /categories endpoints.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{id}/books", handler.categoryBooks)

	return router
}

// # Book Endpoints

/*
GET /api/v1/books/search.

Description: Free-text search, relevance ordered, up to 20 books.

Request:
  - q: string (blank returns an empty list)

Response:
  - 200: []Book
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	writeBooks(writer, handler.service.Search(request.Context(), requestutil.Query(request, "q")))
}

/*
GET /api/v1/books/popular.

Response:
  - 200: []Book: up to 10 books
*/
func (handler *Handler) popular(writer http.ResponseWriter, request *http.Request) {
	writeBooks(writer, handler.service.Popular(request.Context()))
}

/*
GET /api/v1/books.

Description: Runs a raw category query such as "subject:fiction".

Request:
  - category: string (blank returns an empty list)

Response:
  - 200: []Book
*/
func (handler *Handler) listByCategoryQuery(writer http.ResponseWriter, request *http.Request) {
	writeBooks(writer, handler.service.ByCategory(request.Context(), requestutil.Query(request, "category")))
}

/*
GET /api/v1/books/{id}.

Response:
  - 200: Book
  - 404: NOT_FOUND: the volume could not be loaded
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	handler.writeDetail(writer, request, nil)
}

/*
POST /api/v1/books/{id}/hydrate.

Description: Completes a list-level record with the full detail record. The
request body is the partial book the client already has; fields the detail
response lacks are kept from it.

Request:
  - body: Book (any shape accepted by the normalizer)

Response:
  - 200: Book (the body itself when the catalog is unavailable)
  - 400: VALIDATION_ERROR: malformed JSON
*/
func (handler *Handler) hydrate(writer http.ResponseWriter, request *http.Request) {
	var raw Raw
	if err := requestutil.DecodeJSON(writer, request, &raw); err != nil {
		respond.Error(writer, request, err)
		return
	}

	base := Normalize(raw)
	handler.writeDetail(writer, request, &base)
}

func (handler *Handler) writeDetail(writer http.ResponseWriter, request *http.Request, base *Book) {
	result := handler.service.Detail(request.Context(), requestutil.Param(request, "id"), base)
	markDegraded(writer, result.Degraded())

	if result.Value == nil {
		respond.Error(writer, request, apperr.NotFound("Book"))
		return
	}

	respond.OK(writer, result.Value)
}

// # Category Endpoints

/*
GET /api/v1/categories.

Response:
  - 200: []Category
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Categories())
}

/*
GET /api/v1/categories/{id}/books.

Response:
  - 200: []Book
  - 404: NOT_FOUND: unknown category
*/
func (handler *Handler) categoryBooks(writer http.ResponseWriter, request *http.Request) {
	result, ok := handler.service.CategoryBooks(request.Context(), requestutil.Param(request, "id"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Category"))
		return
	}

	writeBooks(writer, result)
}

// # Helpers

func writeBooks(writer http.ResponseWriter, result Result[[]Book]) {
	markDegraded(writer, result.Degraded())
	respond.OK(writer, result.Value)
}

func markDegraded(writer http.ResponseWriter, degraded bool) {
	if degraded {
		writer.Header().Set(constants.HeaderXCatalogDegraded, "true")
	}
}
