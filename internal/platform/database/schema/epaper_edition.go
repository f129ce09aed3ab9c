// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package schema

// EpaperEditionTable represents the 'epaper.edition' table
type EpaperEditionTable struct {
	Table         string
	ID            string
	Slug          string
	Name          string
	Language      string
	CoverImageURL string
	PDFURL        string
	PageCount     string
	PublishedOn   string
	Status        string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// EpaperEdition is the schema definition for epaper.edition
var EpaperEdition = EpaperEditionTable{
	Table:         "epaper.edition",
	ID:            "id",
	Slug:          "slug",
	Name:          "name",
	Language:      "language",
	CoverImageURL: "coverimageurl",
	PDFURL:        "pdfurl",
	PageCount:     "pagecount",
	PublishedOn:   "publishedon",
	Status:        "status",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t EpaperEditionTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Name, t.Language, t.CoverImageURL, t.PDFURL,
		t.PageCount, t.PublishedOn, t.Status, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
