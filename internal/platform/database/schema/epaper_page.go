// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package schema

// EpaperPageTable represents the 'epaper.page' table
type EpaperPageTable struct {
	Table        string
	ID           string
	EditionID    string
	PageNumber   string
	ImageURLJpeg string
	ImageURLWebp string
}

// EpaperPage is the schema definition for epaper.page
var EpaperPage = EpaperPageTable{
	Table:        "epaper.page",
	ID:           "id",
	EditionID:    "editionid",
	PageNumber:   "pagenumber",
	ImageURLJpeg: "imageurljpeg",
	ImageURLWebp: "imageurlwebp",
}

func (t EpaperPageTable) Columns() []string {
	return []string{t.ID, t.EditionID, t.PageNumber, t.ImageURLJpeg, t.ImageURLWebp}
}
