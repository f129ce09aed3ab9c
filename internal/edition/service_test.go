// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package edition

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
)

// fakeRepository is an in-memory [Repository] for service tests.
type fakeRepository struct {
	editions map[string]*Edition
}

func newFakeRepository(editions ...*Edition) *fakeRepository {
	repo := &fakeRepository{editions: make(map[string]*Edition)}
	for _, e := range editions {
		repo.editions[e.ID] = e
	}
	return repo
}

func (f *fakeRepository) List(_ context.Context, _ Filter, _, _ int) ([]*Edition, int, error) {
	out := make([]*Edition, 0, len(f.editions))
	for _, e := range f.editions {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Edition, error) {
	e, ok := f.editions[id]
	if !ok {
		return nil, apperr.NotFound("edition")
	}
	return e, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*Edition, error) {
	for _, e := range f.editions {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, apperr.NotFound("edition")
}

func (f *fakeRepository) Create(_ context.Context, e *Edition) error {
	for _, existing := range f.editions {
		if existing.Slug == e.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}
	f.editions[e.ID] = e
	return nil
}

func (f *fakeRepository) ReplacePages(_ context.Context, editionID string, pages []*Page) error {
	e, ok := f.editions[editionID]
	if !ok {
		return apperr.NotFound("edition")
	}
	e.Pages = pages
	e.PageCount = len(pages)
	return nil
}

func (f *fakeRepository) SetStatus(_ context.Context, id, status string) error {
	e, ok := f.editions[id]
	if !ok {
		return apperr.NotFound("edition")
	}
	e.Status = status
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.editions[id]; !ok {
		return apperr.NotFound("edition")
	}
	delete(f.editions, id)
	return nil
}

// fakeCache records invalidations and always misses.
type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Get(context.Context, string) (*Edition, error) { return nil, nil }
func (f *fakeCache) Set(context.Context, *Edition) error           { return nil }
func (f *fakeCache) Invalidate(_ context.Context, id string) error {
	f.invalidated = append(f.invalidated, id)
	return nil
}

func newTestService(editions ...*Edition) (*Service, *fakeRepository, *fakeCache) {
	repo := newFakeRepository(editions...)
	cache := &fakeCache{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, cache, logger), repo, cache
}

func publishedEdition(id string, pageCount int) *Edition {
	pages := make([]*Page, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		pages = append(pages, &Page{
			ID:           id + "-p",
			EditionID:    id,
			PageNumber:   i + 1,
			ImageURLJpeg: "https://cdn.kaburlu.media/p.jpg",
		})
	}
	return &Edition{
		ID:          id,
		Slug:        "vaartha-daily-" + id,
		Name:        "Vaartha Daily",
		Language:    "te",
		PageCount:   pageCount,
		PublishedOn: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:      StatusPublished,
		Pages:       pages,
	}
}

/*
TestService_GetReadableEdition verifies the viewer handoff contract: drafts
read as missing, published-but-pageless editions surface the explicit
unavailable error, and readable editions pass through.
*/
func TestService_GetReadableEdition(t *testing.T) {
	tests := []struct {
		name     string
		edition  *Edition
		wantCode string
	}{
		{"readable", publishedEdition("ed-1", 5), ""},
		{"pageless_unavailable", publishedEdition("ed-2", 0), "EDITION_UNAVAILABLE"},
		{
			name: "draft_hidden",
			edition: &Edition{
				ID: "ed-3", Name: "Vaartha Daily", Language: "te",
				Status: StatusDraft,
				Pages:  []*Page{{PageNumber: 1, ImageURLJpeg: "https://cdn.kaburlu.media/p.jpg"}},
			},
			wantCode: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(tt.edition)

			edition, err := service.GetReadableEdition(context.Background(), tt.edition.ID)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.True(t, edition.IsReadable())
				return
			}

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

/*
TestService_CreateEdition verifies validation and slug derivation for new
drafts.
*/
func TestService_CreateEdition(t *testing.T) {
	publishedOn := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("creates_draft_with_derived_slug", func(t *testing.T) {
		service, repo, _ := newTestService()

		edition, err := service.CreateEdition(context.Background(), CreateInput{
			Name:        "Vaartha Daily",
			Language:    "te",
			PDFURL:      "https://cdn.kaburlu.media/editions/full.pdf",
			PublishedOn: publishedOn,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, edition.ID)
		assert.Equal(t, "vaartha-daily-2026-03-14", edition.Slug)
		assert.Equal(t, StatusDraft, edition.Status)
		assert.Contains(t, repo.editions, edition.ID)
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		tests := []struct {
			name  string
			input CreateInput
		}{
			{"missing_name", CreateInput{Language: "te", PublishedOn: publishedOn}},
			{"missing_language", CreateInput{Name: "Vaartha Daily", PublishedOn: publishedOn}},
			{"bad_language_code", CreateInput{Name: "Vaartha Daily", Language: "Telugu!", PublishedOn: publishedOn}},
			{"missing_date", CreateInput{Name: "Vaartha Daily", Language: "te"}},
			{"relative_pdf_url", CreateInput{Name: "Vaartha Daily", Language: "te", PublishedOn: publishedOn, PDFURL: "editions/full.pdf"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service, _, _ := newTestService()

				_, err := service.CreateEdition(context.Background(), tt.input)

				require.Error(t, err)
				appErr := apperr.As(err)
				require.NotNil(t, appErr)
				assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			})
		}
	})
}

/*
TestService_ReplacePages verifies roster validation and cache invalidation.
*/
func TestService_ReplacePages(t *testing.T) {
	page := func(n int) PageInput {
		return PageInput{PageNumber: n, ImageURLJpeg: "https://cdn.kaburlu.media/p.jpg"}
	}

	t.Run("replaces_and_invalidates", func(t *testing.T) {
		edition := publishedEdition("ed-1", 2)
		service, repo, cache := newTestService(edition)

		err := service.ReplacePages(context.Background(), "ed-1", []PageInput{page(1), page(2), page(3)})

		require.NoError(t, err)
		assert.Equal(t, 3, repo.editions["ed-1"].PageCount)
		assert.Equal(t, []string{"ed-1"}, cache.invalidated)
	})

	t.Run("rejects_bad_rosters", func(t *testing.T) {
		tests := []struct {
			name  string
			pages []PageInput
		}{
			{"empty_roster", nil},
			{"gap_in_numbering", []PageInput{page(1), page(3)}},
			{"zero_based_numbering", []PageInput{page(0), page(1)}},
			{"missing_image", []PageInput{{PageNumber: 1}}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service, _, cache := newTestService(publishedEdition("ed-1", 2))

				err := service.ReplacePages(context.Background(), "ed-1", tt.pages)

				require.Error(t, err)
				assert.Empty(t, cache.invalidated)
			})
		}
	})
}

/*
TestService_PublishEdition verifies the no-pageless-publish rule.
*/
func TestService_PublishEdition(t *testing.T) {
	t.Run("publishes_draft_with_pages", func(t *testing.T) {
		draft := publishedEdition("ed-1", 4)
		draft.Status = StatusDraft
		service, repo, _ := newTestService(draft)

		require.NoError(t, service.PublishEdition(context.Background(), "ed-1"))
		assert.Equal(t, StatusPublished, repo.editions["ed-1"].Status)
	})

	t.Run("rejects_pageless_draft", func(t *testing.T) {
		draft := publishedEdition("ed-1", 0)
		draft.Status = StatusDraft
		service, repo, _ := newTestService(draft)

		err := service.PublishEdition(context.Background(), "ed-1")

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "UNPROCESSABLE", appErr.Code)
		assert.Equal(t, StatusDraft, repo.editions["ed-1"].Status)
	})
}
