// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package edition

import "context"

// # Edition & Page Data Access

// Repository defines the data access contract for editions and their pages.
type Repository interface {

	/*
		List returns catalogue editions matching the filter, newest first by
		default.

		Parameters:
		  - context: context.Context
		  - f: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Edition: List without page rosters (PageCount populated)
		  - int: Total matching editions
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Edition, int, error)

	/*
		FindByID returns the edition with the given ID, pages included.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Edition: Hydrated edition with ordered page roster
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Edition, error)

	/*
		FindBySlug returns the edition with the given slug, pages included.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Edition: Hydrated edition with ordered page roster
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Edition, error)

	/*
		Create persists a new edition in draft state.

		Parameters:
		  - context: context.Context
		  - edition: *Edition

		Returns:
		  - error: Conflict on duplicate slug, storage failures otherwise
	*/
	Create(context context.Context, edition *Edition) error

	/*
		ReplacePages swaps the edition's full page roster atomically and
		updates the denormalized page count.

		Parameters:
		  - context: context.Context
		  - editionID: string (UUID)
		  - pages: []*Page (complete roster, reading order)

		Returns:
		  - error: ErrNotFound if the edition is missing
	*/
	ReplacePages(context context.Context, editionID string, pages []*Page) error

	/*
		SetStatus moves an edition between draft and published.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - status: string

		Returns:
		  - error: ErrNotFound if missing
	*/
	SetStatus(context context.Context, id, status string) error

	/*
		SoftDelete hides an edition without physical row removal.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: ErrNotFound if missing
	*/
	SoftDelete(context context.Context, id string) error
}

// Cache defines the read-through cache for hydrated editions.
//
// A miss returns (nil, nil): cache failures are never surfaced to readers,
// the repository remains the source of truth.
type Cache interface {
	Get(context context.Context, id string) (*Edition, error)
	Set(context context.Context, edition *Edition) error
	Invalidate(context context.Context, id string) error
}
