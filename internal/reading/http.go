// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
HTTP interface for viewer sessions.

# Routing Strategy

All endpoints are public (v1): anonymous reading is a product requirement.
Authentication, when present, upgrades the session with cross-device
progress sync.

Session IDs are unguessable UUIDs; an expired or unknown ID reads as 404.
*/
package reading

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/atshybrid/kaburlu-epaper/internal/platform/request"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for reading sessions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reading [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches session endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Post("/editions/{id}/sessions", handler.OpenSession)
	api.Get("/sessions/{sid}", handler.GetStatus)
	api.Post("/sessions/{sid}/goto", handler.GoToPage)
	api.Post("/sessions/{sid}/events", handler.ApplyEvents)
	api.Delete("/sessions/{sid}", handler.CloseSession)
}

// # Session Lifecycle

// openSessionRequest defines the inbound JSON schema for session opens.
type openSessionRequest struct {
	// ViewportWidth lets the client report its measured pager width up
	// front, enabling resume jumps on open. Zero is accepted.
	ViewportWidth float64 `json:"viewport_width"`
}

// sessionResponse pairs the session handle with its first snapshot.
type sessionResponse struct {
	SessionID string      `json:"session_id"`
	EditionID string      `json:"edition_id"`
	Status    interface{} `json:"status"`
}

/*
POST /api/v1/editions/{id}/sessions.

Description: Opens a viewer session over a published edition. Anonymous
readers are welcome; authenticated readers resume at their saved page.

Request:
  - id: string (Edition UUID)
  - body: openSessionRequest (optional)

Response:
  - 201: sessionResponse: Session handle and initial snapshot
  - 404: 404: ErrNotFound: Edition not found or not published
  - 422: 422: EDITION_UNAVAILABLE: Edition has no readable pages
*/
func (handler *Handler) OpenSession(writer http.ResponseWriter, request *http.Request) {
	editionID := requestutil.ID(request, "id")

	// The body is optional: a bare POST opens an unmeasured session.
	var input openSessionRequest
	if request.ContentLength > 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	var userID string
	if claims := requestutil.Claims(request); claims != nil {
		userID = claims.UserID
	}

	session, err := handler.service.Open(request.Context(), editionID, userID, input.ViewportWidth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sessionResponse{
		SessionID: session.ID,
		EditionID: session.EditionID,
		Status:    session.Viewer.Status(),
	})
}

/*
GET /api/v1/sessions/{sid}.

Description: Returns the session's current page/zoom snapshot.

Request:
  - sid: string (Session UUID)

Response:
  - 200: viewer.Status: Snapshot
  - 404: 404: ErrNotFound: Unknown or expired session
*/
func (handler *Handler) GetStatus(writer http.ResponseWriter, request *http.Request) {
	sessionID := requestutil.ID(request, "sid")

	status, err := handler.service.Status(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

// goToPageRequest defines the inbound JSON schema for programmatic jumps.
type goToPageRequest struct {
	PageIndex int `json:"page_index"`
}

/*
POST /api/v1/sessions/{sid}/goto.

Description: Jumps to a page. Out-of-range indices are no-ops; the
unchanged snapshot comes back so clients need no special-case handling.

Request:
  - sid: string (Session UUID)
  - body: goToPageRequest

Response:
  - 200: viewer.Status: Snapshot after the jump attempt
  - 404: 404: ErrNotFound: Unknown or expired session
*/
func (handler *Handler) GoToPage(writer http.ResponseWriter, request *http.Request) {
	sessionID := requestutil.ID(request, "sid")

	var input goToPageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.GoToPage(request.Context(), sessionID, input.PageIndex)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

// applyEventsRequest defines the inbound JSON schema for event batches.
type applyEventsRequest struct {
	Events []Event `json:"events"`
}

/*
POST /api/v1/sessions/{sid}/events.

Description: Applies a batch of touch/scroll/viewport events in arrival
order and returns the settled snapshot.

Request:
  - sid: string (Session UUID)
  - body: applyEventsRequest

Response:
  - 200: viewer.Status: Snapshot after the batch
  - 404: 404: ErrNotFound: Unknown or expired session
*/
func (handler *Handler) ApplyEvents(writer http.ResponseWriter, request *http.Request) {
	sessionID := requestutil.ID(request, "sid")

	var input applyEventsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.ApplyEvents(request.Context(), sessionID, input.Events)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

/*
DELETE /api/v1/sessions/{sid}.

Description: Closes a session and releases its transform state.

Request:
  - sid: string (Session UUID)

Response:
  - 204: No content
  - 404: 404: ErrNotFound: Unknown or expired session
*/
func (handler *Handler) CloseSession(writer http.ResponseWriter, request *http.Request) {
	sessionID := requestutil.ID(request, "sid")

	if err := handler.service.Close(request.Context(), sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
