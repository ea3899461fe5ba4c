package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appresource "agencydesk/internal/application/resource"
	"agencydesk/internal/application/common"
	"agencydesk/internal/domain/resource"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/interfaces/http/handlers/testutil"
	"agencydesk/internal/shared/errors"
)

func TestResourceHandler_UploadResource(t *testing.T) {
	var (
		gotCmd  appresource.UploadResourceCommand
		gotName string
		gotBody []byte
	)
	svc := &mockResourceService{
		uploadFn: func(_ context.Context, cmd appresource.UploadResourceCommand, file common.File) (resource.Resource, error) {
			gotCmd = cmd
			gotName = file.Name
			gotBody, _ = io.ReadAll(file.Reader)
			return resource.Resource{ID: "r1", Title: cmd.Title, FileSize: file.Size}, nil
		},
	}
	h := NewResourceHandler(svc, testutil.NewMockLogger())
	c, w := testutil.NewMultipartContext(http.MethodPost, "/resources/upload", "file", "guide.pdf", []byte("%PDF-1.7"),
		map[string]string{"brandId": "1", "title": "Brand guide", "category": "brand_guidelines"})
	testutil.SetAuthContext(c, "1", user.RoleAdmin)

	h.UploadResource(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1", gotCmd.BrandID)
	assert.Equal(t, resource.CategoryBrandGuidelines, gotCmd.Category)
	assert.Equal(t, "guide.pdf", gotName)
	assert.Equal(t, []byte("%PDF-1.7"), gotBody)
}

func TestResourceHandler_UploadResource_MissingFile(t *testing.T) {
	called := false
	svc := &mockResourceService{
		uploadFn: func(context.Context, appresource.UploadResourceCommand, common.File) (resource.Resource, error) {
			called = true
			return resource.Resource{}, nil
		},
	}
	h := NewResourceHandler(svc, testutil.NewMockLogger())
	c, w := testutil.NewMultipartContext(http.MethodPost, "/resources/upload", "file", "", nil,
		map[string]string{"title": "No file"})

	h.UploadResource(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestResourceHandler_ListResources(t *testing.T) {
	tests := []struct {
		name         string
		query        map[string]string
		wantStatus   int
		wantBrand    string
		wantCategory resource.Category
	}{
		{name: "no filter", query: map[string]string{}, wantStatus: http.StatusOK},
		{
			name:         "brand and category",
			query:        map[string]string{"brandId": "2", "category": "videos"},
			wantStatus:   http.StatusOK,
			wantBrand:    "2",
			wantCategory: resource.CategoryVideos,
		},
		{name: "unknown category", query: map[string]string{"category": "memes"}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var brandID string
			var category resource.Category
			svc := &mockResourceService{
				listFn: func(b string, cat resource.Category) []resource.Resource {
					brandID, category = b, cat
					return nil
				},
			}
			h := NewResourceHandler(svc, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodGet, "/resources", nil)
			testutil.SetQueryParams(c, tt.query)

			h.ListResources(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBrand, brandID)
			assert.Equal(t, tt.wantCategory, category)
		})
	}
}

func TestResourceHandler_AccessResource(t *testing.T) {
	svc := &mockResourceService{
		accessFn: func(_ context.Context, id string) (resource.Resource, error) {
			return resource.Resource{}, errors.NewNotFoundError("resource not found", id)
		},
	}
	h := NewResourceHandler(svc, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/resources/x/access", nil)
	testutil.SetURLParam(c, "id", "x")

	h.AccessResource(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResourceHandler_ListActivity(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		wantLimit  int
		wantStatus int
	}{
		{name: "default", wantLimit: defaultActivityLimit, wantStatus: http.StatusOK},
		{name: "explicit", limit: "3", wantLimit: 3, wantStatus: http.StatusOK},
		{name: "invalid", limit: "-1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := 0
			svc := &mockResourceService{
				activityFn: func(limit int) []resource.Activity {
					got = limit
					return nil
				},
			}
			h := NewResourceHandler(svc, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodGet, "/resources/activity", nil)
			if tt.limit != "" {
				testutil.SetQueryParams(c, map[string]string{"limit": tt.limit})
			}

			h.ListActivity(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLimit, got)
		})
	}
}
