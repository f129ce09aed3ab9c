// Copyright (c) 2026 Kaburlu Media. All rights reserved.
// Author: platform@kaburlu.media

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{
			name:      "defaults_when_absent",
			query:     "",
			wantPage:  DefaultPage,
			wantLimit: DefaultLimit,
		},
		{
			name:      "explicit_values",
			query:     "page=3&limit=50",
			wantPage:  3,
			wantLimit: 50,
		},
		{
			name:      "garbage_falls_back",
			query:     "page=abc&limit=xyz",
			wantPage:  DefaultPage,
			wantLimit: DefaultLimit,
		},
		{
			name:      "negative_page_clamped",
			query:     "page=-2&limit=10",
			wantPage:  DefaultPage,
			wantLimit: 10,
		},
		{
			name:      "excessive_limit_clamped",
			query:     "page=2&limit=5000",
			wantPage:  2,
			wantLimit: DefaultLimit,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/editions?"+tc.query, nil)

			params := FromRequest(request)

			assert.Equal(t, tc.wantPage, params.Page)
			assert.Equal(t, tc.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 0, Params{Page: 0, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	assert.Equal(t, 0, NewMeta(1, 0, 45).TotalPages)
}
