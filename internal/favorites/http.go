// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/catalog"
	requestutil "github.com/taibuivan/bookshelf/internal/platform/request"
	"github.com/taibuivan/bookshelf/internal/platform/respond"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
	"github.com/taibuivan/bookshelf/pkg/pagination"
	"github.com/taibuivan/bookshelf/pkg/slice"
)

// maxDeviceIDLength bounds the guest key taken from X-Device-ID.
const maxDeviceIDLength = 128

// # Handler Implementation

// Handler implements the HTTP layer for the favorites list.
type Handler struct {
	service *Service
}

// NewHandler constructs a new favorites [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /favorites endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.add)
	router.Get("/{id}", handler.contains)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Endpoints

/*
GET /api/v1/favorites.

Description: Lists the caller's favorites, optionally filtered by title or
author.

Request:
  - q: string (case and accent insensitive)
  - page, limit: pagination

Response:
  - 200: []Book with pagination meta
  - 401: UNAUTHORIZED: neither a token nor a device id was sent
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	owner, err := ownerFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books := Filter(handler.service.List(request.Context(), owner), requestutil.Query(request, "q"))
	params := pagination.FromRequest(request)

	respond.Paginated(writer, slice.Window(books, params.Offset(), params.Limit), pagination.NewMeta(params, len(books)))
}

// containsResponse answers a membership check.
type containsResponse struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

/*
GET /api/v1/favorites/{id}.

Response:
  - 200: {id, saved}
*/
func (handler *Handler) contains(writer http.ResponseWriter, request *http.Request) {
	owner, err := ownerFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, "id")
	respond.OK(writer, containsResponse{ID: id, Saved: handler.service.Contains(request.Context(), owner, id)})
}

/*
POST /api/v1/favorites.

Description: Saves a book. The body may be any record the normalizer accepts,
such as a remote volume or a Book returned by the catalog endpoints.

Response:
  - 200: []Book: the list after the save
  - 400: VALIDATION_ERROR: malformed JSON
  - 422: UNPROCESSABLE: the record has no id
  - 503: STORAGE_UNAVAILABLE: the favorite was not saved
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	owner, err := ownerFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var raw catalog.Raw
	if err := requestutil.DecodeJSON(writer, request, &raw); err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.Add(request.Context(), owner, raw)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

/*
DELETE /api/v1/favorites/{id}.

Response:
  - 200: []Book: the list after the removal
  - 503: STORAGE_UNAVAILABLE: a guest removal was not written
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	owner, err := ownerFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.Remove(request.Context(), owner, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

// # Helpers

// ownerFrom resolves the session identity: token first, then device header.
func ownerFrom(request *http.Request) (Owner, error) {
	if userID := requestutil.UserID(request); userID != "" {
		return Owner{UserID: userID}, nil
	}

	deviceID := requestutil.DeviceID(request)
	if deviceID == "" {
		return Owner{}, ErrNoOwner
	}

	var validator validate.Validator
	err := validator.
		MaxLen("device_id", deviceID, maxDeviceIDLength).
		Printable("device_id", deviceID).
		Err()
	if err != nil {
		return Owner{}, err
	}

	return Owner{DeviceID: deviceID}, nil
}
