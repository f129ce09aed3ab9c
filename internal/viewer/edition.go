// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
Package viewer implements the interactive state machine behind the digital
e-paper reader: pinch-zoom and pan transforms, gesture classification,
double-tap handling, and horizontal page-swipe pagination.

# Architecture

The package is deliberately free of transport and storage concerns so it can
be embedded anywhere (the HTTP session surface, simulators, tests):

  - Model: one page's zoom/pan transform with clamping rules.
  - Recognizer: classifies raw touch streams into semantic actions.
  - ZoomController: owns the zoomed/unzoomed state for the active page.
  - Paginator: reconciles horizontal scroll offset with a discrete page index.
  - Session: composes the above and gates paging while zoomed.

# Concurrency

A Session serializes all event handling behind a single mutex: gesture and
scroll events are applied strictly in arrival order, matching the
event-loop model of the mobile shell this core was extracted from.
*/
package viewer

// Page is one renderable newspaper page inside an edition.
//
// Pages are read-only for the viewer: they are created when an edition is
// fetched from the CMS and never mutated here.
type Page struct {
	ID           string `json:"id"`
	PageNumber   int    `json:"page_number"`
	ImageURLJpeg string `json:"image_url_jpeg"`
	ImageURLWebp string `json:"image_url_webp"`
}

// Issue carries the page roster and source document of one edition.
type Issue struct {
	PageCount int    `json:"page_count"`
	PDFURL    string `json:"pdf_url"`
	Pages     []Page `json:"pages"`
}

// Edition is one publication date's full set of newspaper pages.
//
// The Pages slice order is the reading order. The viewer never reorders it.
type Edition struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CoverImageURL string `json:"cover_image_url"`
	Issue         Issue  `json:"issue"`
}

// PageCount returns the number of readable pages in the edition.
func (e Edition) PageCount() int {
	return len(e.Issue.Pages)
}
