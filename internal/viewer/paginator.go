// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package viewer

import "math"

// # Page Paginator

// Paginator keeps the discrete page index consistent with the horizontal
// scroll position, and supports programmatic jumps.
//
// # Invariants
//
//   - CurrentIndex is always a valid index once the edition has ≥1 page;
//     before the first scroll event it is 0.
//   - OnScroll is O(1) and idempotent when the index hasn't changed — it is
//     called on every scroll frame.
type Paginator struct {
	pageCount     int
	index         int
	viewportWidth float64

	// scrollTo issues a programmatic scroll command to the platform list.
	// Confirmation arrives later through OnScroll.
	scrollTo func(offsetX float64)
}

// NewPaginator creates a paginator over pageCount pages starting at index 0.
func NewPaginator(pageCount int, scrollTo func(offsetX float64)) *Paginator {
	return &Paginator{pageCount: pageCount, scrollTo: scrollTo}
}

// CurrentIndex returns the current page index.
func (p *Paginator) CurrentIndex() int {
	return p.index
}

// PageCount returns the number of pages.
func (p *Paginator) PageCount() int {
	return p.pageCount
}

// SetViewport records the measured viewport width used to convert between
// scroll offsets and page indices. A zero width means "not yet measured".
func (p *Paginator) SetViewport(width float64) {
	p.viewportWidth = width
}

// OnScroll reconciles a scroll offset with the discrete page index and
// reports whether the index changed.
//
// # Guards
//
// A zero viewport width (layout not yet measured) or an empty page roster
// makes this a no-op — no division by zero, no index mutation. Offsets
// beyond either end clamp to the first/last page.
func (p *Paginator) OnScroll(offsetX, viewportWidth float64) bool {
	if viewportWidth <= 0 || p.pageCount == 0 {
		return false
	}
	p.viewportWidth = viewportWidth

	page := int(math.Round(offsetX / viewportWidth))
	if page < 0 {
		page = 0
	}
	if page > p.pageCount-1 {
		page = p.pageCount - 1
	}

	if page == p.index {
		return false
	}
	p.index = page
	return true
}

// GoToPage jumps to the given index, issuing a programmatic scroll command
// and updating the index optimistically. The authoritative confirmation
// arrives via the next [OnScroll].
//
// Returns false for out-of-range indices and unmeasured viewports; both are
// rejected as no-ops.
func (p *Paginator) GoToPage(index int) bool {
	if index < 0 || index >= p.pageCount {
		return false
	}
	if p.viewportWidth <= 0 {
		return false
	}

	if p.scrollTo != nil {
		p.scrollTo(float64(index) * p.viewportWidth)
	}
	p.index = index
	return true
}
