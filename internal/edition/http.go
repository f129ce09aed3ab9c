// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
HTTP interface for browsing and managing the edition catalogue.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all readers
    (GET /editions, GET /editions/{id}).
  - Restricted (v1): Mutative endpoints requiring the Editor role
    (POST, PUT, DELETE).

The handler translates between the web/JSON layer and the internal domain
[Service].
*/
package edition

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/middleware"
	requestutil "github.com/atshybrid/kaburlu-epaper/internal/platform/request"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/respond"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/sec"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/validate"
	"github.com/atshybrid/kaburlu-epaper/pkg/convert"
	"github.com/atshybrid/kaburlu-epaper/pkg/pagination"
	"github.com/atshybrid/kaburlu-epaper/pkg/pointer"
)

// # Handler Implementation

// Handler implements the HTTP layer for the edition catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new edition [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches catalogue endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/editions", handler.ListEditions)
	api.Get("/editions/{id}", handler.GetEdition)
	api.Get("/editions/slug/{slug}", handler.GetEditionBySlug)

	// Editorial protected endpoints
	api.Group(func(editorial chi.Router) {
		editorial.Use(middleware.RequireRole(sec.RoleEditor))
		editorial.Post("/editions", handler.CreateEdition)
		editorial.Put("/editions/{id}/pages", handler.ReplacePages)
		editorial.Post("/editions/{id}/publish", handler.PublishEdition)
		editorial.Delete("/editions/{id}", handler.DeleteEdition)
	})
}

// # Catalogue Retrieval

/*
GET /api/v1/editions.

Description: Returns a paginated roster of published editions, newest
first. Editors may include drafts.

Request:
  - lang: string (Filter by publication language code)
  - date: string (Filter by publication date, YYYY-MM-DD)
  - dir: string (asc, desc)
  - drafts: string ("true" includes drafts; requires Editor role)
  - limit: int
  - page: int

Response:
  - 200: []Edition: Paginated list
*/
func (handler *Handler) ListEditions(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Language: request.URL.Query().Get("lang"),
		SortDir:  request.URL.Query().Get("dir"),
	}

	// Draft visibility is an editorial-only privilege
	if convert.ToBool(request.URL.Query().Get("drafts")) {
		if claims := requestutil.Claims(request); claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleEditor) {
			filter.IncludeDrafts = true
		}
	}

	if rawDate := request.URL.Query().Get("date"); rawDate != "" {
		date, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("date", "Date must be formatted YYYY-MM-DD"))
			return
		}
		filter.Date = date
	}

	editions, total, err := handler.service.ListEditions(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, editions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/editions/{id}.

Description: Returns one edition with its full ordered page roster.

Request:
  - id: string (UUID)

Response:
  - 200: Edition: Hydrated edition
  - 404: 404: ErrNotFound: Edition not found
*/
func (handler *Handler) GetEdition(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	edition, err := handler.service.GetEdition(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edition)
}

/*
GET /api/v1/editions/slug/{slug}.

Description: Returns one edition addressed by its URL slug. Used by deep
links shared from the reader.

Request:
  - slug: string

Response:
  - 200: Edition: Hydrated edition
  - 404: 404: ErrNotFound: Edition not found
*/
func (handler *Handler) GetEditionBySlug(writer http.ResponseWriter, request *http.Request) {
	editionSlug := requestutil.Param(request, "slug")

	edition, err := handler.service.GetEditionBySlug(request.Context(), editionSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edition)
}

// # Editorial Endpoints

// createEditionRequest defines the inbound JSON schema for new editions.
type createEditionRequest struct {
	Name          string `json:"name"`
	Language      string `json:"language"`
	CoverImageURL string `json:"cover_image_url"`
	PDFURL        string `json:"pdf_url"`
	PublishedOn   string `json:"published_on"`
}

/*
POST /api/v1/editions.

Description: Creates a new draft edition.

Request:
  - body: createEditionRequest

Response:
  - 201: Edition: Created draft
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 403: 403: ErrForbidden: Editor role required
  - 409: 409: ErrConflict: Duplicate name/date slug
*/
func (handler *Handler) CreateEdition(writer http.ResponseWriter, request *http.Request) {
	var input createEditionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publishedOn, err := time.Parse("2006-01-02", input.PublishedOn)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldPublishedOn, "Publication date must be formatted YYYY-MM-DD"))
		return
	}

	edition, err := handler.service.CreateEdition(request.Context(), CreateInput{
		Name:          input.Name,
		Language:      input.Language,
		CoverImageURL: input.CoverImageURL,
		PDFURL:        input.PDFURL,
		PublishedOn:   publishedOn,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, edition)
}

// pageUpload is one page of an inbound roster payload.
//
// ImageURLWebp is optional; the rendering pipeline only produces WebP
// variants for newer editions.
type pageUpload struct {
	PageNumber   int     `json:"page_number"`
	ImageURLJpeg string  `json:"image_url_jpeg"`
	ImageURLWebp *string `json:"image_url_webp,omitempty"`
}

// replacePagesRequest defines the inbound JSON schema for roster uploads.
type replacePagesRequest struct {
	Pages []pageUpload `json:"pages"`
}

/*
PUT /api/v1/editions/{id}/pages.

Description: Replaces the edition's full page roster with the uploaded one.
The rendering pipeline calls this after converting the source PDF.

Request:
  - id: string (UUID)
  - body: replacePagesRequest (complete roster, reading order)

Response:
  - 200: Message: Roster replaced
  - 400: 400: Validation: Non-contiguous numbering or missing images
  - 404: 404: ErrNotFound: Edition not found
*/
func (handler *Handler) ReplacePages(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input replacePagesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	inputs := make([]PageInput, 0, len(input.Pages))
	for _, page := range input.Pages {
		inputs = append(inputs, PageInput{
			PageNumber:   page.PageNumber,
			ImageURLJpeg: page.ImageURLJpeg,
			ImageURLWebp: pointer.Val(page.ImageURLWebp),
		})
	}

	if err := handler.service.ReplacePages(request.Context(), id, inputs); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Page roster replaced"})
}

/*
POST /api/v1/editions/{id}/publish.

Description: Moves a draft into the reader-visible catalogue.

Request:
  - id: string (UUID)

Response:
  - 200: Message: Edition published
  - 404: 404: ErrNotFound: Edition not found
  - 422: 422: ErrUnprocessable: Edition has no pages
*/
func (handler *Handler) PublishEdition(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.PublishEdition(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Edition published"})
}

/*
DELETE /api/v1/editions/{id}.

Description: Soft-deletes an edition and evicts its cached copy.

Request:
  - id: string (UUID)

Response:
  - 204: No content
  - 404: 404: ErrNotFound: Edition not found
*/
func (handler *Handler) DeleteEdition(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteEdition(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
