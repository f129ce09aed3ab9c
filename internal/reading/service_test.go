// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package reading

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atshybrid/kaburlu-epaper/internal/edition"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
	"github.com/atshybrid/kaburlu-epaper/internal/viewer"
)

// fakeEditions serves a fixed catalogue.
type fakeEditions struct {
	editions map[string]*edition.Edition
}

func (f *fakeEditions) GetReadableEdition(_ context.Context, id string) (*edition.Edition, error) {
	e, ok := f.editions[id]
	if !ok {
		return nil, apperr.NotFound("edition")
	}
	if len(e.Pages) == 0 {
		return nil, apperr.EditionUnavailable()
	}
	return e, nil
}

// memoryProgress is a thread-safe in-memory [ProgressStore].
type memoryProgress struct {
	mu    sync.Mutex
	saved map[string]int
}

func newMemoryProgress() *memoryProgress {
	return &memoryProgress{saved: make(map[string]int)}
}

func (m *memoryProgress) Save(_ context.Context, userID, editionID string, pageIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[userID+":"+editionID] = pageIndex
	return nil
}

func (m *memoryProgress) Load(_ context.Context, userID, editionID string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pageIndex, ok := m.saved[userID+":"+editionID]
	return pageIndex, ok, nil
}

func catalogueEdition(id string, pageCount int) *edition.Edition {
	pages := make([]*edition.Page, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		pages = append(pages, &edition.Page{
			ID:           "p",
			EditionID:    id,
			PageNumber:   i + 1,
			ImageURLJpeg: "https://cdn.kaburlu.media/p.jpg",
		})
	}
	return &edition.Edition{
		ID:     id,
		Name:   "Vaartha Daily",
		Status: edition.StatusPublished,
		Pages:  pages,
	}
}

func newReadingService(t *testing.T, editions ...*edition.Edition) (*Service, *memoryProgress) {
	t.Helper()

	catalogue := &fakeEditions{editions: make(map[string]*edition.Edition)}
	for _, e := range editions {
		catalogue.editions[e.ID] = e
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	progress := newMemoryProgress()
	return NewService(catalogue, NewHub(logger), progress, logger), progress
}

/*
TestService_Open verifies session creation over readable, missing, and
pageless editions.
*/
func TestService_Open(t *testing.T) {
	t.Run("readable_edition", func(t *testing.T) {
		service, _ := newReadingService(t, catalogueEdition("ed-1", 5))

		session, err := service.Open(context.Background(), "ed-1", "", 400)

		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		status := session.Viewer.Status()
		assert.True(t, status.Available)
		assert.Equal(t, 5, status.PageCount)
	})

	t.Run("unknown_edition", func(t *testing.T) {
		service, _ := newReadingService(t)

		_, err := service.Open(context.Background(), "missing", "", 400)

		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("pageless_edition_unavailable", func(t *testing.T) {
		service, _ := newReadingService(t, catalogueEdition("ed-1", 0))

		_, err := service.Open(context.Background(), "ed-1", "reader-1", 400)

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "EDITION_UNAVAILABLE", appErr.Code)
		assert.Equal(t, 422, appErr.HTTPStatus)
	})
}

/*
TestService_ResumeAtSavedPage verifies that an authenticated reopen with a
measured viewport lands on the stored resume point.
*/
func TestService_ResumeAtSavedPage(t *testing.T) {
	service, progress := newReadingService(t, catalogueEdition("ed-1", 8))
	require.NoError(t, progress.Save(context.Background(), "reader-1", "ed-1", 5))

	t.Run("authenticated_with_viewport", func(t *testing.T) {
		session, err := service.Open(context.Background(), "ed-1", "reader-1", 400)

		require.NoError(t, err)
		assert.Equal(t, 5, session.Viewer.Status().CurrentPageIndex)
	})

	t.Run("anonymous_starts_at_first_page", func(t *testing.T) {
		session, err := service.Open(context.Background(), "ed-1", "", 400)

		require.NoError(t, err)
		assert.Equal(t, 0, session.Viewer.Status().CurrentPageIndex)
	})

	t.Run("unmeasured_viewport_skips_resume", func(t *testing.T) {
		session, err := service.Open(context.Background(), "ed-1", "reader-1", 0)

		require.NoError(t, err)
		assert.Equal(t, 0, session.Viewer.Status().CurrentPageIndex)
	})
}

/*
TestService_ProgressSavedOnPageChange verifies that confirmed page changes
reach the progress store for authenticated readers.
*/
func TestService_ProgressSavedOnPageChange(t *testing.T) {
	service, progress := newReadingService(t, catalogueEdition("ed-1", 8))

	session, err := service.Open(context.Background(), "ed-1", "reader-1", 400)
	require.NoError(t, err)

	_, err = service.GoToPage(context.Background(), session.ID, 3)
	require.NoError(t, err)

	// The save runs off the event path.
	require.Eventually(t, func() bool {
		pageIndex, found, _ := progress.Load(context.Background(), "reader-1", "ed-1")
		return found && pageIndex == 3
	}, time.Second, 10*time.Millisecond)
}

/*
TestService_ApplyEvents verifies batch application in order: a viewport
measurement, a pinch, and its release leave the session zoomed.
*/
func TestService_ApplyEvents(t *testing.T) {
	service, _ := newReadingService(t, catalogueEdition("ed-1", 5))

	session, err := service.Open(context.Background(), "ed-1", "", 0)
	require.NoError(t, err)

	epoch := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	batch := []Event{
		{Type: EventViewport, ViewportWidth: 400},
		{Type: EventTouch, Touch: &viewer.TouchEvent{
			Phase: viewer.TouchBegan, PointerCount: 2, X: 200, Y: 300, Timestamp: epoch,
		}},
		{Type: EventTouch, Touch: &viewer.TouchEvent{
			Phase: viewer.TouchMoved, PointerCount: 2, X: 200, Y: 800, Timestamp: epoch.Add(16 * time.Millisecond),
		}},
		{Type: EventTouch, Touch: &viewer.TouchEvent{
			Phase: viewer.TouchEnded, PointerCount: 0, X: 200, Y: 800, Timestamp: epoch.Add(32 * time.Millisecond),
		}},
	}

	status, err := service.ApplyEvents(context.Background(), session.ID, batch)

	require.NoError(t, err)
	assert.True(t, status.IsZoomed)

	// A zoomed session drops scroll frames.
	status, err = service.ApplyEvents(context.Background(), session.ID, []Event{
		{Type: EventScroll, OffsetX: 800, ViewportWidth: 400},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, status.CurrentPageIndex)
}

/*
TestService_GoToPageOutOfRange verifies that a bad index returns the
unchanged snapshot rather than an error.
*/
func TestService_GoToPageOutOfRange(t *testing.T) {
	service, _ := newReadingService(t, catalogueEdition("ed-1", 5))

	session, err := service.Open(context.Background(), "ed-1", "", 400)
	require.NoError(t, err)

	status, err := service.GoToPage(context.Background(), session.ID, 99)

	require.NoError(t, err)
	assert.Equal(t, 0, status.CurrentPageIndex)
}

/*
TestService_CloseAndExpiry verifies that closed sessions read as missing.
*/
func TestService_CloseAndExpiry(t *testing.T) {
	service, _ := newReadingService(t, catalogueEdition("ed-1", 5))

	session, err := service.Open(context.Background(), "ed-1", "", 400)
	require.NoError(t, err)

	require.NoError(t, service.Close(context.Background(), session.ID))

	_, err = service.Status(context.Background(), session.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Closing twice reads the same as never existing.
	err = service.Close(context.Background(), session.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
