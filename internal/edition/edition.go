// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
Package edition manages the e-paper catalogue: daily editions, their page
rosters, and publication state.

An edition represents one publication date of one named paper (for example
"Vaartha Daily, 2026-03-14" in Telugu). Editors upload the source PDF and
the pre-rendered page images through the CMS; readers browse published
editions and open them in the viewer.

# Lifecycle

draft → published → (soft) deleted. Drafts are invisible to readers.
Publishing requires at least one page, so the viewer can rely on published
editions being readable.
*/
package edition

import (
	"time"

	"github.com/atshybrid/kaburlu-epaper/internal/viewer"
	"github.com/atshybrid/kaburlu-epaper/pkg/slice"
)

// Publication states for an edition.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Page is one rendered newspaper page belonging to an edition.
type Page struct {
	ID           string `json:"id"`
	EditionID    string `json:"edition_id"`
	PageNumber   int    `json:"page_number"`
	ImageURLJpeg string `json:"image_url_jpeg"`
	ImageURLWebp string `json:"image_url_webp,omitempty"`
}

// Edition is the catalogue entry for one publication date.
type Edition struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	Language      string     `json:"language"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	PDFURL        string     `json:"pdf_url,omitempty"`
	PageCount     int        `json:"page_count"`
	PublishedOn   time.Time  `json:"published_on"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`

	// Pages is populated only on single-edition reads; listings carry just
	// PageCount.
	Pages []*Page `json:"pages,omitempty"`
}

// IsReadable reports whether the edition can be opened in the viewer: it
// must be published and carry at least one page.
func (e *Edition) IsReadable() bool {
	return e.Status == StatusPublished && e.PageCount > 0
}

// ToViewer converts a hydrated catalogue edition into the viewer's
// transport-free representation.
func (e *Edition) ToViewer() viewer.Edition {
	return viewer.Edition{
		ID:            e.ID,
		Name:          e.Name,
		CoverImageURL: e.CoverImageURL,
		Issue: viewer.Issue{
			PageCount: len(e.Pages),
			PDFURL:    e.PDFURL,
			Pages: slice.Map(e.Pages, func(p *Page) viewer.Page {
				return viewer.Page{
					ID:           p.ID,
					PageNumber:   p.PageNumber,
					ImageURLJpeg: p.ImageURLJpeg,
					ImageURLWebp: p.ImageURLWebp,
				}
			}),
		},
	}
}

// Filter narrows edition listings.
type Filter struct {
	// Language restricts to one publication language code (e.g. "te").
	Language string
	// Date restricts to one publication date (zero value matches all).
	Date time.Time
	// SortDir orders by publication date, "asc" or "desc" (default desc).
	SortDir string
	// IncludeDrafts includes unpublished editions (editorial listings only).
	IncludeDrafts bool
}
