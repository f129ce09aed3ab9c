// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrEmptyEdition is returned by [Session.Open] when the edition has no
// readable pages (a malformed CMS response). The viewer reports an
// explicit unavailable status instead of entering any gesture state.
var ErrEmptyEdition = errors.New("viewer: edition has no pages")

// Status is the read-only snapshot exposed to the surrounding UI
// (header, indicator dots, page readout).
type Status struct {
	// Available is false when the open edition had no pages; the UI shows
	// a retry-capable error view instead of the pager.
	Available bool `json:"available"`

	CurrentPageIndex int  `json:"current_page_index"`
	PageCount        int  `json:"page_count"`
	IsZoomed         bool `json:"is_zoomed"`
}

// Session orchestrates one open edition: it feeds gestures to the active
// page's transform, gates page-swipe while zoomed, and keeps the current
// page index consistent across user-driven and programmatic navigation.
//
// # Single Writer
//
// The Session is the only writer of the page index and the zoom latch.
// All mutation flows through the exported methods, which serialize behind
// one mutex so events apply strictly in arrival order even when the
// embedding shell delivers them from multiple goroutines.
//
// # Teardown
//
// Close (or a subsequent Open) invalidates the session: late gesture or
// scroll callbacks from an already-dismantled screen are detected and
// discarded, never applied.
type Session struct {
	mu sync.Mutex

	logger *slog.Logger

	edition   Edition
	available bool
	open      bool

	paginator  *Paginator
	recognizer *Recognizer
	zoom       *ZoomController

	// transforms holds per-page models, created lazily when a page first
	// becomes active and reset when it scrolls away.
	transforms map[int]*Model

	// onPageChanged observes confirmed page-index changes (used by the
	// reading-progress sync). May be nil.
	onPageChanged func(pageIndex int)

	// pendingScroll records the offset of the last programmatic scroll
	// command, available to shells that need to drive the platform list.
	pendingScroll float64
}

// NewSession creates an idle session. Open must be called before any
// event handling.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{logger: logger}
}

// SetOnPageChanged registers an observer for confirmed page changes.
func (s *Session) SetOnPageChanged(fn func(pageIndex int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPageChanged = fn
}

// # Lifecycle

// Open begins viewing an edition, discarding any previous state.
//
// An edition without pages returns [ErrEmptyEdition]; the session then
// reports Available=false and ignores all gesture and paging input until
// a non-empty edition is opened.
func (s *Session) Open(edition Edition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opening always tears down the previous edition first: in-flight
	// animations die with their models, buffered gestures are orphaned.
	s.teardownLocked()

	s.edition = edition

	if edition.PageCount() == 0 {
		s.available = false
		s.open = true
		s.logger.Warn("viewer_edition_unavailable",
			slog.String("edition_id", edition.ID),
		)
		return ErrEmptyEdition
	}

	s.available = true
	s.open = true
	s.transforms = make(map[int]*Model)
	s.paginator = NewPaginator(edition.PageCount(), func(offsetX float64) {
		s.pendingScroll = offsetX
	})
	s.zoom = NewZoomController(s.modelFor(0), nil)
	s.recognizer = NewRecognizer(s.zoom.IsZoomed)

	s.logger.Info("viewer_session_opened",
		slog.String("edition_id", edition.ID),
		slog.Int("page_count", edition.PageCount()),
	)
	return nil
}

// Close releases all per-page transform state. Further events are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.teardownLocked()
	s.logger.Info("viewer_session_closed",
		slog.String("edition_id", s.edition.ID),
	)
}

// teardownLocked drops every component. Callers hold s.mu.
func (s *Session) teardownLocked() {
	s.open = false
	s.available = false
	s.transforms = nil
	s.paginator = nil
	s.recognizer = nil
	s.zoom = nil
	s.pendingScroll = 0
}

// # Status Surface

// Status returns the read-only snapshot for header/indicator rendering.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open || !s.available {
		return Status{Available: false}
	}
	return Status{
		Available:        true,
		CurrentPageIndex: s.paginator.CurrentIndex(),
		PageCount:        s.paginator.PageCount(),
		IsZoomed:         s.zoom.IsZoomed(),
	}
}

// ActiveTransform returns the active page's transform, identity when the
// session is unavailable.
func (s *Session) ActiveTransform() Transform {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return Identity()
	}
	return s.transforms[s.paginator.CurrentIndex()].Current()
}

// Edition returns the currently open edition (zero value when closed).
func (s *Session) Edition() Edition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edition
}

// # Navigation

// GoToPage jumps to the given page index (indicator dots, next/prev
// buttons). Out-of-range indices are rejected as logged no-ops: they are
// UI-wiring bugs, not user-facing failures.
func (s *Session) GoToPage(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return
	}

	previous := s.paginator.CurrentIndex()
	if !s.paginator.GoToPage(index) {
		s.logger.Warn("viewer_goto_rejected",
			slog.Int("index", index),
			slog.Int("page_count", s.paginator.PageCount()),
		)
		return
	}

	if previous != index {
		s.activateLocked(previous, index)
	}
}

// SetViewport records the measured viewport width.
func (s *Session) SetViewport(width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return
	}
	s.paginator.SetViewport(width)
}

// HandleScroll applies one horizontal scroll frame from the platform list.
//
// While the active page is zoomed, scrolling is disabled: the event is
// dropped so panning a zoomed image can never swipe to the next page.
func (s *Session) HandleScroll(offsetX, viewportWidth float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return
	}
	if s.zoom.IsZoomed() {
		return
	}

	previous := s.paginator.CurrentIndex()
	if s.paginator.OnScroll(offsetX, viewportWidth) {
		s.activateLocked(previous, s.paginator.CurrentIndex())
	}
}

// # Gesture Input

// HandleTouch feeds one raw touch event through the recognizer and applies
// the resulting actions to the active page.
func (s *Session) HandleTouch(ev TouchEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		// Stale callback after teardown: discard silently.
		return
	}

	model := s.transforms[s.paginator.CurrentIndex()]
	for _, action := range s.recognizer.Handle(ev) {
		switch action.Kind {
		case ActionPinchMove:
			model.ApplyPinchDelta(action.Ratio)
		case ActionPanMove:
			model.ApplyPanDelta(action.DX, action.DY)
		case ActionGestureEnd:
			s.zoom.OnGestureEnd()
		case ActionDoubleTap:
			s.zoom.OnDoubleTap()
		case ActionPanStart, ActionTap:
			// Pan start needs no transform work; taps are UI affordances
			// (header chrome toggle) outside this core.
		}
	}
}

// # Animation Clock

// Advance steps the active page's in-flight spring animation by dt.
// Driven by the embedding shell's frame callback.
func (s *Session) Advance(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return
	}
	s.transforms[s.paginator.CurrentIndex()].Step(dt)
}

// Settle completes any in-flight animation immediately. Non-interactive
// shells (the HTTP session surface) use it instead of a frame loop.
func (s *Session) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready() {
		return
	}
	s.transforms[s.paginator.CurrentIndex()].Settle()
}

// # Internals

// ready reports whether the session can accept input. Callers hold s.mu.
func (s *Session) ready() bool {
	return s.open && s.available
}

// modelFor lazily creates the transform model for a page slot.
func (s *Session) modelFor(index int) *Model {
	model, ok := s.transforms[index]
	if !ok {
		model = NewModel()
		s.transforms[index] = model
	}
	return model
}

// activateLocked switches the active page: the outgoing page's transform
// resets to identity, the zoom latch clears, and the page-change observer
// fires. Callers hold s.mu.
func (s *Session) activateLocked(previous, next int) {
	if outgoing, ok := s.transforms[previous]; ok {
		outgoing.Reset()
	}

	s.zoom.Rebind(s.modelFor(next))

	if s.onPageChanged != nil {
		s.onPageChanged(next)
	}
}
