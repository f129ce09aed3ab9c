// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

/*
PostgreSQL implementation of the catalogue's data access.

It leans on Postgres features to keep the catalogue fast and consistent:
  - Window Functions: COUNT(*) OVER() returns the total match count without
    a second query.
  - Batch Pipelines: page rosters are written through pgx batching to keep
    round-trips flat regardless of page count.
  - ACID Transactions: roster replacement and the denormalized page count
    update happen atomically.
*/
package edition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atshybrid/kaburlu-epaper/internal/platform/apperr"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/database/schema"
	"github.com/atshybrid/kaburlu-epaper/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type editionRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed edition store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &editionRepository{pool: pool}
}

/*
List retrieves catalogue editions matching the filter.

Description: Listings omit page rosters; the denormalized page count column
serves browsing UIs. Drafts are excluded unless the filter asks for them.

Parameters:
  - context: context.Context
  - f: Filter (language, date, sorting, draft visibility)
  - limit: int
  - offset: int

Returns:
  - []*Edition: Slice of editions without pages
  - int: Total matching editions
  - error: Storage failures
*/
func (repository *editionRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Edition, int, error) {

	// Query construction
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			%s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s IS NULL
	`,
		schema.EpaperEdition.ID,
		schema.EpaperEdition.Slug,
		schema.EpaperEdition.Name,
		schema.EpaperEdition.Language,
		schema.EpaperEdition.CoverImageURL,
		schema.EpaperEdition.PDFURL,
		schema.EpaperEdition.PageCount,
		schema.EpaperEdition.PublishedOn,
		schema.EpaperEdition.Status,
		schema.EpaperEdition.CreatedAt,
		schema.EpaperEdition.UpdatedAt,
		schema.EpaperEdition.Table,
		schema.EpaperEdition.DeletedAt,
	))

	// Reader listings only ever see published editions with at least one page
	if !filter.IncludeDrafts {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.EpaperEdition.Status, argID))
		args = append(args, StatusPublished)
		argID++
		queryBuilder.WriteString(fmt.Sprintf(" AND %s > 0", schema.EpaperEdition.PageCount))
	}

	// Language filter injection
	if filter.Language != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.EpaperEdition.Language, argID))
		args = append(args, filter.Language)
		argID++
	}

	// Publication date filter injection
	if !filter.Date.IsZero() {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.EpaperEdition.PublishedOn, argID))
		args = append(args, filter.Date)
		argID++
	}

	// Ordering and pagination limits
	sortDir := "DESC"
	if strings.ToLower(filter.SortDir) == "asc" {
		sortDir = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", schema.EpaperEdition.PublishedOn, sortDir))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list editions: %w", err)
	}
	defer rows.Close()

	// Edition entity mapping
	var editions []*Edition
	var totalCount int

	for rows.Next() {
		var edition Edition
		err := rows.Scan(
			&edition.ID,
			&edition.Slug,
			&edition.Name,
			&edition.Language,
			&edition.CoverImageURL,
			&edition.PDFURL,
			&edition.PageCount,
			&edition.PublishedOn,
			&edition.Status,
			&edition.CreatedAt,
			&edition.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan edition: %w", err)
		}
		editions = append(editions, &edition)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to read edition rows: %w", err)
	}

	return editions, totalCount, nil
}

/*
FindByID returns one edition with its full ordered page roster.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Edition: Hydrated edition
  - error: apperr.NotFound on absent rows
*/
func (repository *editionRepository) FindByID(context context.Context, id string) (*Edition, error) {
	return repository.findOne(context, schema.EpaperEdition.ID, id)
}

/*
FindBySlug returns one edition with its full ordered page roster, addressed
by its URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Edition: Hydrated edition
  - error: apperr.NotFound on absent rows
*/
func (repository *editionRepository) FindBySlug(context context.Context, slug string) (*Edition, error) {
	return repository.findOne(context, schema.EpaperEdition.Slug, slug)
}

// findOne loads an edition by an exact column match and hydrates its pages.
func (repository *editionRepository) findOne(context context.Context, column, value string) (*Edition, error) {

	query := fmt.Sprintf(`
		SELECT
			%s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.EpaperEdition.ID,
		schema.EpaperEdition.Slug,
		schema.EpaperEdition.Name,
		schema.EpaperEdition.Language,
		schema.EpaperEdition.CoverImageURL,
		schema.EpaperEdition.PDFURL,
		schema.EpaperEdition.PageCount,
		schema.EpaperEdition.PublishedOn,
		schema.EpaperEdition.Status,
		schema.EpaperEdition.CreatedAt,
		schema.EpaperEdition.UpdatedAt,
		schema.EpaperEdition.Table,
		column,
		schema.EpaperEdition.DeletedAt,
	)

	var edition Edition
	err := repository.pool.QueryRow(context, query, value).Scan(
		&edition.ID,
		&edition.Slug,
		&edition.Name,
		&edition.Language,
		&edition.CoverImageURL,
		&edition.PDFURL,
		&edition.PageCount,
		&edition.PublishedOn,
		&edition.Status,
		&edition.CreatedAt,
		&edition.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("edition")
		}
		return nil, fmt.Errorf("postgres: failed to find edition: %w", err)
	}

	// Page roster hydration, reading order
	pages, err := repository.listPages(context, edition.ID)
	if err != nil {
		return nil, err
	}
	edition.Pages = pages

	return &edition, nil
}

// listPages returns the ordered roster for one edition.
func (repository *editionRepository) listPages(context context.Context, editionID string) ([]*Page, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.EpaperPage.ID, schema.EpaperPage.EditionID, schema.EpaperPage.PageNumber,
		schema.EpaperPage.ImageURLJpeg, schema.EpaperPage.ImageURLWebp,
		schema.EpaperPage.Table,
		schema.EpaperPage.EditionID,
		schema.EpaperPage.PageNumber,
	)

	rows, err := repository.pool.Query(context, query, editionID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*Page
	for rows.Next() {
		var page Page
		err := rows.Scan(&page.ID, &page.EditionID, &page.PageNumber, &page.ImageURLJpeg, &page.ImageURLWebp)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan page: %w", err)
		}
		pages = append(pages, &page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read page rows: %w", err)
	}

	return pages, nil
}

/*
Create persists a new draft edition.

Description: Slug uniqueness is enforced by the database; a duplicate maps
to a Conflict for the editorial UI to surface.

Parameters:
  - context: context.Context
  - edition: *Edition

Returns:
  - error: apperr.Conflict on duplicate slug
*/
func (repository *editionRepository) Create(context context.Context, edition *Edition) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`,
		schema.EpaperEdition.Table,
		schema.EpaperEdition.ID,
		schema.EpaperEdition.Slug,
		schema.EpaperEdition.Name,
		schema.EpaperEdition.Language,
		schema.EpaperEdition.CoverImageURL,
		schema.EpaperEdition.PDFURL,
		schema.EpaperEdition.PageCount,
		schema.EpaperEdition.PublishedOn,
		schema.EpaperEdition.Status,
	)

	_, err := repository.pool.Exec(context, query,
		edition.ID,
		edition.Slug,
		edition.Name,
		edition.Language,
		edition.CoverImageURL,
		edition.PDFURL,
		edition.PageCount,
		edition.PublishedOn,
		edition.Status,
	)
	if err != nil {
		return dberr.Wrap(err, "create edition")
	}

	return nil
}

/*
ReplacePages swaps the edition's page roster atomically.

Description: Runs inside one transaction: the old roster is deleted, the
new one batch-inserted, and the denormalized page count updated. A crash
mid-way leaves the previous roster intact.

Parameters:
  - context: context.Context
  - editionID: string (UUID)
  - pages: []*Page (complete roster, reading order)

Returns:
  - error: apperr.NotFound if the edition is missing
*/
func (repository *editionRepository) ReplacePages(context context.Context, editionID string, pages []*Page) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin roster transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Denormalized count update doubles as the existence check
	updateQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW()
		WHERE %s = $2 AND %s IS NULL
	`,
		schema.EpaperEdition.Table,
		schema.EpaperEdition.PageCount, schema.EpaperEdition.UpdatedAt,
		schema.EpaperEdition.ID, schema.EpaperEdition.DeletedAt,
	)

	result, err := transaction.Exec(context, updateQuery, len(pages), editionID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update page count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("edition")
	}

	// Drop the previous roster
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.EpaperPage.Table, schema.EpaperPage.EditionID)
	if _, err := transaction.Exec(context, deleteQuery, editionID); err != nil {
		return fmt.Errorf("postgres: failed to clear pages: %w", err)
	}

	// Batch-insert the new roster
	if len(pages) > 0 {
		batch := &pgx.Batch{}
		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
		`,
			schema.EpaperPage.Table,
			schema.EpaperPage.ID, schema.EpaperPage.EditionID, schema.EpaperPage.PageNumber,
			schema.EpaperPage.ImageURLJpeg, schema.EpaperPage.ImageURLWebp,
		)
		for _, page := range pages {
			batch.Queue(insertQuery, page.ID, editionID, page.PageNumber, page.ImageURLJpeg, page.ImageURLWebp)
		}

		results := transaction.SendBatch(context, batch)
		for i := 0; i < len(pages); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("postgres: failed to batch insert page %d: %w", i, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("postgres: failed to close page batch: %w", err)
		}
	}

	return transaction.Commit(context)
}

/*
SetStatus moves an edition between draft and published.
*/
func (repository *editionRepository) SetStatus(context context.Context, id, status string) error {

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW()
		WHERE %s = $2 AND %s IS NULL
	`,
		schema.EpaperEdition.Table,
		schema.EpaperEdition.Status, schema.EpaperEdition.UpdatedAt,
		schema.EpaperEdition.ID, schema.EpaperEdition.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, status, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to set edition status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("edition")
	}

	return nil
}

/*
SoftDelete hides an edition record.
*/
func (repository *editionRepository) SoftDelete(context context.Context, id string) error {

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.EpaperEdition.Table, schema.EpaperEdition.DeletedAt,
		schema.EpaperEdition.ID, schema.EpaperEdition.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete edition: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("edition")
	}

	return nil
}
