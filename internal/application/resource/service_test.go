package resource

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydesk/internal/application/common"
	"agencydesk/internal/application/store"
	"agencydesk/internal/application/store/storetest"
	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/resource"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
)

type mockBlobs struct {
	keys    []string
	PutFunc func(key string, body []byte) (string, error)
}

func (m *mockBlobs) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.PutFunc != nil {
		return m.PutFunc(key, body)
	}
	m.keys = append(m.keys, key)
	return "blob://" + key, nil
}

type brandSet map[string]bool

func (b brandSet) Exists(id string) bool { return b[id] }

var at = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func signedIn() context.Context {
	return actor.WithActor(context.Background(), actor.Actor{ID: "2", Username: "manager", Role: user.RoleAdmin})
}

func newTestService(t *testing.T, blobs *mockBlobs) (*Service, *storetest.Slots, *storetest.Notifier) {
	t.Helper()
	slots, n := storetest.NewSlots(), &storetest.Notifier{}
	resources := store.New(Kind(), slots, n,
		store.WithIDs[resource.Resource](id.NewSequence("r")),
		store.WithLogger[resource.Resource](logger.Nop()),
	)
	activity := store.New(ActivityKind(), slots, nil,
		store.WithIDs[resource.Activity](id.NewSequence("a")),
		store.WithLogger[resource.Activity](logger.Nop()),
	)
	require.NoError(t, resources.Load(context.Background()))
	require.NoError(t, activity.Load(context.Background()))

	svc := NewService(resources, activity, brandSet{"1": true, "2": true}, blobs, logger.Nop(),
		WithIDs(id.NewSequence("f")),
		WithClock(biztime.Fixed(at)),
	)
	return svc, slots, n
}

func guidelines() CreateResourceCommand {
	return CreateResourceCommand{
		BrandID:  "1",
		Title:    "Brand book",
		Category: resource.CategoryBrandGuidelines,
		FileType: "pdf",
		FileURL:  "https://cdn.example.com/book.pdf",
		FileSize: 2048,
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		mutate  func(*CreateResourceCommand)
		wantErr func(error) bool
	}{
		{name: "valid", ctx: signedIn()},
		{name: "anonymous", ctx: context.Background(), wantErr: errors.IsUnauthorizedError},
		{name: "unknown category", ctx: signedIn(), mutate: func(c *CreateResourceCommand) { c.Category = "memes" }, wantErr: errors.IsValidationError},
		{name: "unsupported file type", ctx: signedIn(), mutate: func(c *CreateResourceCommand) { c.FileType = "exe" }, wantErr: errors.IsValidationError},
		{name: "unknown brand", ctx: signedIn(), mutate: func(c *CreateResourceCommand) { c.BrandID = "7" }, wantErr: errors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, n := newTestService(t, &mockBlobs{})
			cmd := guidelines()
			if tt.mutate != nil {
				tt.mutate(&cmd)
			}

			r, err := svc.Create(tt.ctx, cmd)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Empty(t, svc.List("", ""))
				assert.Empty(t, svc.Activity(0))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2", r.UploadedBy)
			assert.Equal(t, "New resource created", n.Last().Title)
			assert.Equal(t, "/resources/"+r.ID, n.Last().Link)

			log := svc.Activity(0)
			require.Len(t, log, 1)
			assert.Equal(t, resource.ActivityCreated, log[0].Action)
			assert.Equal(t, "manager", log[0].Username)
		})
	}
}

func TestUpload(t *testing.T) {
	blobs := &mockBlobs{}
	svc, _, _ := newTestService(t, blobs)
	body := "%PDF-1.7 quarterly numbers"

	r, err := svc.Upload(signedIn(), UploadResourceCommand{
		BrandID:  "2",
		Title:    "Q2 report",
		Category: resource.CategoryReports,
	}, common.File{Name: "Q2 Report.PDF", Size: int64(len(body)), Reader: strings.NewReader(body)})
	require.NoError(t, err)

	assert.Equal(t, "pdf", r.FileType)
	assert.Equal(t, int64(len(body)), r.FileSize)
	assert.Equal(t, "blob://resources/f1/Q2_Report.PDF", r.FileURL)
	assert.Equal(t, []string{"resources/f1/Q2_Report.PDF"}, blobs.keys)
}

func TestUpload_Rejections(t *testing.T) {
	cmd := UploadResourceCommand{BrandID: "1", Title: "x", Category: resource.CategoryVisuals}
	tests := []struct {
		name string
		file common.File
	}{
		{name: "no file", file: common.File{}},
		{name: "empty file", file: common.File{Name: "a.png", Reader: strings.NewReader("")}},
		{name: "too large", file: common.File{Name: "a.png", Size: common.MaxUploadSize + 1, Reader: strings.NewReader("x")}},
		{name: "executable", file: common.File{Name: "setup.exe", Size: 1, Reader: strings.NewReader("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := &mockBlobs{}
			svc, _, _ := newTestService(t, blobs)

			_, err := svc.Upload(signedIn(), cmd, tt.file)
			assert.True(t, errors.IsValidationError(err), "unexpected error: %v", err)
			assert.Empty(t, blobs.keys)
		})
	}
}

func TestUpload_StoreFailureKeepsBlob(t *testing.T) {
	blobs := &mockBlobs{}
	svc, slots, _ := newTestService(t, blobs)
	slots.SaveErr = fmt.Errorf("disk full")

	_, err := svc.Upload(signedIn(), UploadResourceCommand{BrandID: "1", Title: "x", Category: resource.CategoryVisuals},
		common.File{Name: "a.png", Size: 1, Reader: strings.NewReader("x")})
	assert.Error(t, err)
	assert.Len(t, blobs.keys, 1)
	assert.Empty(t, svc.List("", ""))
}

func TestUpload_BlobFailure(t *testing.T) {
	blobs := &mockBlobs{PutFunc: func(string, []byte) (string, error) { return "", fmt.Errorf("bucket missing") }}
	svc, _, n := newTestService(t, blobs)

	_, err := svc.Upload(signedIn(), UploadResourceCommand{BrandID: "1", Title: "x", Category: resource.CategoryVisuals},
		common.File{Name: "a.png", Size: 1, Reader: strings.NewReader("x")})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
	assert.Zero(t, n.Count())
}

func TestUpdateDeleteAndActivity(t *testing.T) {
	svc, _, n := newTestService(t, &mockBlobs{})
	ctx := signedIn()

	r, err := svc.Create(ctx, guidelines())
	require.NoError(t, err)

	title := "Brand book v2"
	updated, err := svc.Update(ctx, r.ID, resource.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Brand book v2", updated.Title)
	assert.Equal(t, `Resource "Brand book" has been updated`, n.Last().Message)

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.Equal(t, "Resource deleted", n.Last().Title)
	assert.True(t, errors.IsNotFoundError(svc.Delete(ctx, r.ID)))

	log := svc.Activity(2)
	require.Len(t, log, 2)
	assert.Equal(t, resource.ActivityDeleted, log[0].Action)
	assert.Equal(t, resource.ActivityUpdated, log[1].Action)
	assert.Len(t, svc.Activity(0), 3)
}

func TestRecordAccess(t *testing.T) {
	svc, _, n := newTestService(t, &mockBlobs{})
	r, err := svc.Create(signedIn(), guidelines())
	require.NoError(t, err)
	before := n.Count()

	accessed, err := svc.RecordAccess(signedIn(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", accessed.LastAccessedBy)
	require.NotNil(t, accessed.LastAccessedAt)
	assert.Equal(t, at, *accessed.LastAccessedAt)
	assert.Equal(t, before, n.Count(), "access is not announced")
	assert.Equal(t, resource.ActivityAccessed, svc.Activity(1)[0].Action)

	_, err = svc.RecordAccess(context.Background(), r.ID)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestBrandReferences(t *testing.T) {
	svc, _, _ := newTestService(t, &mockBlobs{})
	_, err := svc.Create(signedIn(), guidelines())
	require.NoError(t, err)

	assert.Equal(t, 1, svc.CountForBrand("1"))
	require.NoError(t, svc.DeleteForBrand(signedIn(), "1"))
	assert.Zero(t, svc.CountForBrand("1"))
	assert.Len(t, svc.List("1", resource.CategoryBrandGuidelines), 0)
}
