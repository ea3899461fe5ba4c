package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "valid values", page: 2, pageSize: 20, wantPage: 2, wantPageSize: 20},
		{name: "page below one defaults", page: 0, pageSize: 20, wantPage: DefaultPage, wantPageSize: 20},
		{name: "negative page size defaults", page: 1, pageSize: -1, wantPage: 1, wantPageSize: DefaultPageSize},
		{name: "page size capped", page: 1, pageSize: 500, wantPage: 1, wantPageSize: MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{name: "no params lists everything", query: "", want: Pagination{}},
		{name: "page only", query: "page=3", want: Pagination{Page: 3, PageSize: DefaultPageSize}},
		{name: "both", query: "page=2&page_size=5", want: Pagination{Page: 2, PageSize: 5}},
		{name: "garbage falls back", query: "page=x&page_size=0", want: Pagination{Page: DefaultPage, PageSize: DefaultPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(c))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, items, Paginate(items, Pagination{}))
	assert.Equal(t, []int{3, 4}, Paginate(items, Pagination{Page: 2, PageSize: 2}))
	assert.Equal(t, []int{5}, Paginate(items, Pagination{Page: 3, PageSize: 2}))
	assert.Empty(t, Paginate(items, Pagination{Page: 9, PageSize: 2}))
}
