// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package reading

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/atshybrid/kaburlu-epaper/internal/edition"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
	"github.com/atshybrid/kaburlu-epaper/internal/viewer"
	"github.com/atshybrid/kaburlu-epaper/pkg/uuidv7"
)

// progressSaveTimeout bounds the background Redis write per page change.
const progressSaveTimeout = 3 * time.Second

// EditionProvider supplies viewer-ready editions to the reading surface.
type EditionProvider interface {
	GetReadableEdition(context context.Context, id string) (*edition.Edition, error)
}

// Event is one client-reported viewer input inside a batch.
//
// Exactly one variant is meaningful per event, selected by Type:
//   - "touch": Touch carries the raw touch sample.
//   - "scroll": OffsetX/ViewportWidth carry one pager scroll frame.
//   - "viewport": ViewportWidth carries a layout measurement.
type Event struct {
	Type          string             `json:"type"`
	Touch         *viewer.TouchEvent `json:"touch,omitempty"`
	OffsetX       float64            `json:"offset_x,omitempty"`
	ViewportWidth float64            `json:"viewport_width,omitempty"`
}

// Event type discriminators.
const (
	EventTouch    = "touch"
	EventScroll   = "scroll"
	EventViewport = "viewport"
)

// # Service Layer

// Service orchestrates viewer sessions for HTTP clients.
type Service struct {
	editions EditionProvider
	hub      *Hub
	progress ProgressStore
	logger   *slog.Logger
}

// NewService constructs a new reading [Service].
func NewService(editions EditionProvider, hub *Hub, progress ProgressStore, logger *slog.Logger) *Service {
	return &Service{
		editions: editions,
		hub:      hub,
		progress: progress,
		logger:   logger,
	}
}

/*
Open starts a viewer session over a readable edition.

Description: Loads the hydrated edition, opens a viewer over it, and
registers the session in the hub under a fresh ID. Authenticated readers
resume at their saved page when the client reports a measured viewport.

Parameters:
  - context: context.Context
  - editionID: string (UUID)
  - userID: string (empty for anonymous readers)
  - viewportWidth: float64 (0 when layout is not yet measured)

Returns:
  - *LiveSession: The registered session
  - error: apperr.NotFound or apperr.EditionUnavailable
*/
func (service *Service) Open(context context.Context, editionID, userID string, viewportWidth float64) (*LiveSession, error) {

	hydrated, err := service.editions.GetReadableEdition(context, editionID)
	if err != nil {
		return nil, err
	}

	viewerSession := viewer.NewSession(service.logger)
	if err := viewerSession.Open(hydrated.ToViewer()); err != nil {
		// GetReadableEdition already rejects pageless editions; this guards
		// against a stale cached copy losing its roster.
		if errors.Is(err, viewer.ErrEmptyEdition) {
			return nil, apperr.EditionUnavailable()
		}
		return nil, apperr.Internal(err)
	}

	if viewportWidth > 0 {
		viewerSession.SetViewport(viewportWidth)
	}

	session := &LiveSession{
		ID:        uuidv7.Must(),
		EditionID: editionID,
		UserID:    userID,
		Viewer:    viewerSession,
	}

	// Progress sync is an authenticated-only feature
	if userID != "" {
		service.wireProgress(session)
		service.resume(context, session, viewportWidth)
	}

	service.hub.Put(session)

	service.logger.Info("reading_session_opened",
		slog.String("session_id", session.ID),
		slog.String("edition_id", editionID),
		slog.Bool("authenticated", userID != ""),
	)

	return session, nil
}

// wireProgress registers the page-change observer that persists resume
// points. The Redis write runs off the viewer's event path so a slow
// store never stalls gesture handling.
func (service *Service) wireProgress(session *LiveSession) {
	userID, editionID := session.UserID, session.EditionID

	session.Viewer.SetOnPageChanged(func(pageIndex int) {
		go func() {
			saveContext, cancel := stdContextWithTimeout(progressSaveTimeout)
			defer cancel()

			if err := service.progress.Save(saveContext, userID, editionID, pageIndex); err != nil {
				service.logger.Warn("reading_progress_save_failed",
					slog.String("edition_id", editionID),
					slog.String("error", err.Error()),
				)
			}
		}()
	})
}

// resume jumps to the reader's saved page, when one exists and the client
// reported a measured viewport. Failures degrade to starting at page 0.
func (service *Service) resume(context context.Context, session *LiveSession, viewportWidth float64) {
	if viewportWidth <= 0 {
		return
	}

	pageIndex, found, err := service.progress.Load(context, session.UserID, session.EditionID)
	if err != nil {
		service.logger.Warn("reading_progress_load_failed",
			slog.String("edition_id", session.EditionID),
			slog.String("error", err.Error()),
		)
		return
	}
	if found {
		session.Viewer.GoToPage(pageIndex)
	}
}

/*
Status returns the current snapshot of a live session.

Parameters:
  - context: context.Context
  - sessionID: string (UUID)

Returns:
  - viewer.Status: Page/zoom snapshot
  - error: apperr.NotFound for unknown or expired sessions
*/
func (service *Service) Status(_ context.Context, sessionID string) (viewer.Status, error) {
	session, err := service.hub.Get(sessionID)
	if err != nil {
		return viewer.Status{}, err
	}
	return session.Viewer.Status(), nil
}

/*
GoToPage jumps a session to the given page index.

Description: Out-of-range indices are logged no-ops inside the viewer; the
unchanged snapshot is returned either way.

Parameters:
  - context: context.Context
  - sessionID: string (UUID)
  - pageIndex: int

Returns:
  - viewer.Status: Snapshot after the jump attempt
  - error: apperr.NotFound for unknown or expired sessions
*/
func (service *Service) GoToPage(_ context.Context, sessionID string, pageIndex int) (viewer.Status, error) {
	session, err := service.hub.Get(sessionID)
	if err != nil {
		return viewer.Status{}, err
	}

	session.Viewer.GoToPage(pageIndex)
	return session.Viewer.Status(), nil
}

/*
ApplyEvents feeds a batch of client events through a session's viewer.

Description: Events apply synchronously in batch order; the viewer's own
mutex serializes concurrent batches. After the batch, any in-flight
animation settles so the returned snapshot reflects the final state the
client should render.

Parameters:
  - context: context.Context
  - sessionID: string (UUID)
  - events: []Event (arrival order)

Returns:
  - viewer.Status: Snapshot after the batch
  - error: apperr.NotFound for unknown or expired sessions
*/
func (service *Service) ApplyEvents(_ context.Context, sessionID string, events []Event) (viewer.Status, error) {
	session, err := service.hub.Get(sessionID)
	if err != nil {
		return viewer.Status{}, err
	}

	for _, event := range events {
		switch event.Type {
		case EventTouch:
			if event.Touch != nil {
				session.Viewer.HandleTouch(*event.Touch)
			}
		case EventScroll:
			session.Viewer.HandleScroll(event.OffsetX, event.ViewportWidth)
		case EventViewport:
			session.Viewer.SetViewport(event.ViewportWidth)
		default:
			// Unknown event types from newer clients are skipped, not fatal.
		}
	}

	session.Viewer.Settle()
	return session.Viewer.Status(), nil
}

/*
Close ends a session and releases its transform state.

Parameters:
  - context: context.Context
  - sessionID: string (UUID)

Returns:
  - error: apperr.NotFound for unknown or expired sessions
*/
func (service *Service) Close(_ context.Context, sessionID string) error {
	session, err := service.hub.Get(sessionID)
	if err != nil {
		return err
	}

	service.hub.Remove(sessionID)

	service.logger.Info("reading_session_closed",
		slog.String("session_id", sessionID),
		slog.String("edition_id", session.EditionID),
	)
	return nil
}

// stdContextWithTimeout wraps context.WithTimeout over a fresh background
// context, for writes that outlive the originating request.
func stdContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
