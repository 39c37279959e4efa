// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic provides the HTTP interface for searching, inspecting and
downloading albums of the JM comic source.

# Routing Strategy

  - GET /search and GET /comic/{album_id} are read-only and bounded by the
    request timeout.
  - POST /download/{album_id} blocks until the files are on disk and is only
    bounded by the download timeout, if one is configured.

The handler translates between the web/JSON layer and the [Service].
*/
package comic

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/jmcomic-api/internal/platform/apperr"
	"github.com/taibuivan/jmcomic-api/internal/platform/constants"
	"github.com/taibuivan/jmcomic-api/internal/platform/middleware"
	requestutil "github.com/taibuivan/jmcomic-api/internal/platform/request"
	"github.com/taibuivan/jmcomic-api/internal/platform/respond"
	"github.com/taibuivan/jmcomic-api/internal/platform/validate"
)

// Timeouts bound the routes. Zero disables a timeout.
type Timeouts struct {
	Request  time.Duration
	Download time.Duration
}

// # Handler Implementation

// Handler implements the HTTP layer for the comic routes.
type Handler struct {
	service  *Service
	timeouts Timeouts
}

// NewHandler constructs a new comic [Handler] with its service dependency.
func NewHandler(service *Service, timeouts Timeouts) *Handler {
	return &Handler{service: service, timeouts: timeouts}
}

// Routes returns a [chi.Router] configured with the comic endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Retrieval
	router.Group(func(read chi.Router) {
		if handler.timeouts.Request > 0 {
			read.Use(middleware.Deadline(handler.timeouts.Request))
		}
		read.Get("/search", handler.search)
		read.Get("/comic/{album_id}", handler.getComic)
	})

	// ## Download
	router.Group(func(write chi.Router) {
		if handler.timeouts.Download > 0 {
			write.Use(middleware.Deadline(handler.timeouts.Download))
		}
		write.Post("/download/{album_id}", handler.download)
	})

	return router
}

/*
GET /search.

Description: Searches the upstream source and returns every result.

Request:
  - keyword: string (required)
  - client_type: string (html, api; defaults to client.impl of jm.yaml)

Response:
  - 200: []SearchItem
  - 400: Missing 'keyword' parameter
  - 500: Option not initialized or the library error text
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.Search(request.Context(),
		requestutil.Query(request, "keyword", ""),
		requestutil.Query(request, "client_type", ""),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
GET /comic/{album_id}.

Description: Retrieves album metadata and its chapter list.

Request:
  - album_id: string (path)
  - client_type: string

Response:
  - 200: DetailView
  - 400: Missing 'album_id' in path
  - 500: Option not initialized or the library error text
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.Detail(request.Context(),
		requestutil.Param(request, "album_id"),
		requestutil.Query(request, "client_type", ""),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// downloadRequest is decoded loosely so that a wrongly typed chapter_ids is
// a validation failure rather than a decoding one.
type downloadRequest map[string]any

/*
POST /download/{album_id}.

Description: Downloads the listed chapters with the image client. The
client_type query parameter is not read.

Request (Body):
  - chapter_ids: []string

Response:
  - 200: {status, message, download_path_hint}
  - 400: Body is not JSON, or chapter_ids missing or not a list
  - 500: Option not initialized or the library error text
*/
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	var body downloadRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapterIDs, ok := validate.StringList(body["chapter_ids"])
	if !ok {
		respond.Error(writer, request, apperr.Validation(msgInvalidChapterIDs))
		return
	}

	result, err := handler.service.Download(request.Context(), requestutil.Param(request, "album_id"), chapterIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Success(writer, result.Message, map[string]any{
		constants.FieldDownloadPathHint: result.DownloadPathHint,
	})
}
