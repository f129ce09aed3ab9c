// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package edition

import (
	"context"
	"log/slog"
	"time"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/validate"
	"github.com/atshybrid/kaburlu-epaper/pkg/slug"
	"github.com/atshybrid/kaburlu-epaper/pkg/uuidv7"
)

const (
	FieldName        = "name"
	FieldLanguage    = "language"
	FieldPublishedOn = "published_on"
	FieldPDFURL      = "pdf_url"
	FieldPages       = "pages"
)

// # Service Layer

// Service orchestrates the business logic for the edition catalogue.
type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// # Reader Operations

/*
ListEditions retrieves catalogue entries for browsing.

Parameters:
  - context: context.Context
  - f: Filter (language, date, sorting, draft visibility)
  - limit: int
  - offset: int

Returns:
  - []*Edition: Metadata for matched editions
  - int: Total edition count for the given filter
  - error: Storage or execution errors
*/
func (service *Service) ListEditions(context context.Context, f Filter, limit, offset int) ([]*Edition, int, error) {
	return service.repo.List(context, f, limit, offset)
}

/*
GetEdition retrieves one hydrated edition by ID, read-through cached.

Description: Cache connectivity failures are logged and degraded to a
Postgres read. The repository stays the source of truth.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Edition: Hydrated edition with ordered pages
  - error: ErrNotFound if missing
*/
func (service *Service) GetEdition(context context.Context, id string) (*Edition, error) {

	// Cache probe
	if cached, err := service.cache.Get(context, id); err != nil {
		service.logger.Warn("edition_cache_read_failed",
			slog.String("edition_id", id),
			slog.String("error", err.Error()),
		)
	} else if cached != nil {
		return cached, nil
	}

	edition, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Backfill; failures are non-fatal
	if err := service.cache.Set(context, edition); err != nil {
		service.logger.Warn("edition_cache_write_failed",
			slog.String("edition_id", id),
			slog.String("error", err.Error()),
		)
	}

	return edition, nil
}

/*
GetEditionBySlug retrieves one hydrated edition by its URL slug.

Parameters:
  - context: context.Context
  - editionSlug: string

Returns:
  - *Edition: Hydrated edition with ordered pages
  - error: ErrNotFound if missing
*/
func (service *Service) GetEditionBySlug(context context.Context, editionSlug string) (*Edition, error) {
	return service.repo.FindBySlug(context, editionSlug)
}

/*
GetReadableEdition retrieves an edition ready for the viewer.

Description: This is the handoff point to the reading surface. Drafts and
deleted editions surface as NotFound; a published edition that somehow has
no pages surfaces as EditionUnavailable so clients render the explicit
retry view instead of a blank pager.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Edition: Readable edition
  - error: apperr.NotFound or apperr.EditionUnavailable
*/
func (service *Service) GetReadableEdition(context context.Context, id string) (*Edition, error) {
	edition, err := service.GetEdition(context, id)
	if err != nil {
		return nil, err
	}

	if edition.Status != StatusPublished {
		return nil, apperr.NotFound("edition")
	}
	if len(edition.Pages) == 0 {
		service.logger.Warn("edition_without_pages",
			slog.String("edition_id", edition.ID),
		)
		return nil, apperr.EditionUnavailable()
	}

	return edition, nil
}

// # Editorial Operations

// CreateInput carries the editor-supplied fields for a new edition.
type CreateInput struct {
	Name          string
	Language      string
	CoverImageURL string
	PDFURL        string
	PublishedOn   time.Time
}

/*
CreateEdition initialises a new draft edition.

Description: Generates the identity and the URL slug (name + publication
date), validates editor input, and persists the draft. Pages are attached
separately via ReplacePages.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Edition: The created draft
  - error: Validation, Conflict on duplicate slug, or persistence errors
*/
func (service *Service) CreateEdition(context context.Context, input CreateInput) (*Edition, error) {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name)
	validator.Required(FieldLanguage, input.Language)
	validator.Language(FieldLanguage, input.Language)
	validator.Custom(FieldPublishedOn, input.PublishedOn.IsZero(), "Publication date is required")
	if input.PDFURL != "" {
		validator.URL(FieldPDFURL, input.PDFURL)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	edition := &Edition{
		ID:            uuidv7.Must(),
		Slug:          slug.From(input.Name + " " + input.PublishedOn.Format("2006-01-02")),
		Name:          input.Name,
		Language:      input.Language,
		CoverImageURL: input.CoverImageURL,
		PDFURL:        input.PDFURL,
		PublishedOn:   input.PublishedOn,
		Status:        StatusDraft,
	}

	if err := service.repo.Create(context, edition); err != nil {
		return nil, err
	}

	service.logger.Info("edition_created",
		slog.String("edition_id", edition.ID),
		slog.String("slug", edition.Slug),
		slog.String("language", edition.Language),
	)

	return edition, nil
}

// PageInput carries one page of an uploaded roster.
type PageInput struct {
	PageNumber   int
	ImageURLJpeg string
	ImageURLWebp string
}

/*
ReplacePages swaps the full page roster of an edition.

Description: Pages must arrive in reading order with contiguous numbering
starting at 1; the rendering pipeline guarantees this and the check catches
pipeline regressions before readers do.

Parameters:
  - context: context.Context
  - editionID: string (UUID)
  - inputs: []PageInput (complete roster)

Returns:
  - error: Validation, NotFound, or persistence errors
*/
func (service *Service) ReplacePages(context context.Context, editionID string, inputs []PageInput) error {

	validator := &validate.Validator{}
	validator.Custom(FieldPages, len(inputs) == 0, "Page roster cannot be empty")
	for i, input := range inputs {
		if input.PageNumber != i+1 {
			validator.Custom(FieldPages, true, "Page numbers must be contiguous from 1")
			break
		}
		if input.ImageURLJpeg == "" {
			validator.Custom(FieldPages, true, "Every page needs a rendered image")
			break
		}
	}

	if err := validator.Err(); err != nil {
		return err
	}

	pages := make([]*Page, 0, len(inputs))
	for _, input := range inputs {
		pages = append(pages, &Page{
			ID:           uuidv7.Must(),
			EditionID:    editionID,
			PageNumber:   input.PageNumber,
			ImageURLJpeg: input.ImageURLJpeg,
			ImageURLWebp: input.ImageURLWebp,
		})
	}

	if err := service.repo.ReplacePages(context, editionID, pages); err != nil {
		return err
	}

	service.invalidate(context, editionID)

	service.logger.Info("edition_pages_replaced",
		slog.String("edition_id", editionID),
		slog.Int("page_count", len(pages)),
	)

	return nil
}

/*
PublishEdition moves a draft into the reader-visible catalogue.

Description: Publishing an edition without pages is rejected: the viewer
contract says published editions are readable.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Unprocessable for pageless drafts, NotFound, or storage errors
*/
func (service *Service) PublishEdition(context context.Context, id string) error {

	edition, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if len(edition.Pages) == 0 {
		return apperr.Unprocessable("Cannot publish an edition without pages")
	}

	if err := service.repo.SetStatus(context, id, StatusPublished); err != nil {
		return err
	}

	service.invalidate(context, id)

	service.logger.Info("edition_published",
		slog.String("edition_id", id),
		slog.Int("page_count", len(edition.Pages)),
	)

	return nil
}

/*
DeleteEdition soft-deletes an edition and drops its cached copy.
*/
func (service *Service) DeleteEdition(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.invalidate(context, id)

	service.logger.Info("edition_deleted",
		slog.String("edition_id", id),
	)

	return nil
}

// invalidate drops the cached copy; failures are logged, never surfaced.
func (service *Service) invalidate(context context.Context, id string) {
	if err := service.cache.Invalidate(context, id); err != nil {
		service.logger.Warn("edition_cache_invalidate_failed",
			slog.String("edition_id", id),
			slog.String("error", err.Error()),
		)
	}
}
