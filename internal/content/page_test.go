// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		want      PageRequest
		wantField string
	}{
		{name: "defaults", want: PageRequest{Page: 1, Limit: 10}},
		{name: "explicit", page: "3", limit: "25", want: PageRequest{Page: 3, Limit: 25}},
		{name: "whitespace", page: " 2 ", limit: " 5", want: PageRequest{Page: 2, Limit: 5}},
		{name: "limit capped", limit: "1000", want: PageRequest{Page: 1, Limit: MaxLimit}},
		{name: "zero page", page: "0", wantField: "page"},
		{name: "negative limit", limit: "-1", wantField: "limit"},
		{name: "not a number", page: "two", wantField: "page"},
		{name: "huge page clamped", page: "9223372036854775807", limit: "10", want: PageRequest{Page: math.MaxInt/10 + 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageRequest(tt.page, tt.limit)
			if tt.wantField != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageRequestSkip(t *testing.T) {
	assert.Equal(t, 0, PageRequest{}.Skip())
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, 20, PageRequest{Page: 3, Limit: 10}.Skip())
	assert.Equal(t, 8, PageRequest{Page: 5, Limit: 2}.Skip())
	assert.GreaterOrEqual(t, PageRequest{Page: math.MaxInt, Limit: MaxLimit}.Skip(), 0)
	assert.GreaterOrEqual(t, PageRequest{Page: math.MaxInt, Limit: 7}.Skip(), 0)
}

func TestListPastLastPageHugePage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"One", "Two", "Three"} {
		f.createPost(t, title, "")
	}

	req, err := ParsePageRequest("9223372036854775807", "10")
	require.NoError(t, err)
	page, err := f.posts.List(ctx, PostFilter{}, req)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		req        PageRequest
		total      int
		totalPages int
	}{
		{PageRequest{Page: 1, Limit: 10}, 0, 0},
		{PageRequest{Page: 1, Limit: 10}, 1, 1},
		{PageRequest{Page: 1, Limit: 10}, 10, 1},
		{PageRequest{Page: 1, Limit: 10}, 11, 2},
		{PageRequest{Page: 3, Limit: 10}, 5, 1},
		{PageRequest{Page: 2, Limit: 3}, 7, 3},
	}
	for _, tt := range tests {
		got := NewPagination(tt.req, tt.total)
		assert.Equal(t, tt.totalPages, got.TotalPages, "total=%d limit=%d", tt.total, tt.req.Limit)
		assert.Equal(t, tt.total, got.Total)
		assert.Equal(t, tt.req.Page, got.Page)
		assert.Equal(t, tt.req.Limit, got.Limit)
	}
}

func TestNewPageNeverNilItems(t *testing.T) {
	p := newPage[int](PageRequest{}, nil, 0)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.Pagination.Page)
	assert.Equal(t, 10, p.Pagination.Limit)
}
