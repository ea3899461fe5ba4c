package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbrand "agencydesk/internal/application/brand"
	"agencydesk/internal/domain/brand"
	"agencydesk/internal/interfaces/http/handlers/testutil"
	"agencydesk/internal/shared/errors"
)

func TestBrandHandler_CreateBrand(t *testing.T) {
	var got appbrand.CreateBrandCommand
	svc := &mockBrandService{
		createFn: func(_ context.Context, cmd appbrand.CreateBrandCommand) (brand.Brand, error) {
			got = cmd
			return brand.Brand{ID: "3", Name: cmd.Name}, nil
		},
	}
	h := NewBrandHandler(svc, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/brands", map[string]any{
		"name":   "Acme",
		"sector": "retail",
		"primaryContact": map[string]string{
			"name": "Jo", "email": "jo@acme.test",
		},
	})

	h.CreateBrand(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "jo@acme.test", got.PrimaryContact.Email)
}

func TestBrandHandler_ListBrands(t *testing.T) {
	svc := &mockBrandService{
		listFn: func() []brand.Brand {
			return []brand.Brand{{ID: "1", Name: "Shell"}, {ID: "2", Name: "remix"}}
		},
	}
	h := NewBrandHandler(svc, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/brands", nil)

	h.ListBrands(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list struct {
		Items []brand.Brand `json:"items"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "remix", list.Items[1].Name)
}

func TestBrandHandler_UpdateBrand(t *testing.T) {
	var patch brand.Patch
	svc := &mockBrandService{
		updateFn: func(_ context.Context, id string, p brand.Patch) (brand.Brand, error) {
			patch = p
			return brand.Brand{ID: id, Name: *p.Name}, nil
		},
	}
	h := NewBrandHandler(svc, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPatch, "/brands/1", map[string]any{"name": "Shell Retail"})
	testutil.SetURLParam(c, "id", "1")

	h.UpdateBrand(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Shell Retail", *patch.Name)
	assert.Nil(t, patch.Website)
}

func TestBrandHandler_DeleteBrand(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "deleted", id: "1", wantStatus: http.StatusNoContent},
		{name: "blank id", id: " ", wantStatus: http.StatusBadRequest},
		{name: "missing", id: "9", err: errors.NewNotFoundError("brand not found"), wantStatus: http.StatusNotFound},
		{name: "still referenced", id: "1", err: errors.NewConflictError("brand is referenced"), wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBrandService{
				deleteFn: func(context.Context, string) error { return tt.err },
			}
			h := NewBrandHandler(svc, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodDelete, "/brands/"+url.PathEscape(tt.id), nil)
			testutil.SetURLParam(c, "id", tt.id)

			h.DeleteBrand(c)
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
