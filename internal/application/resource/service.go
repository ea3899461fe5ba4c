// Package resource manages shared brand assets, their uploads and the audit
// trail of who touched them.
package resource

import (
	"context"
	"fmt"
	"time"

	"agencydesk/internal/application/common"
	"agencydesk/internal/application/store"
	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/notification"
	"agencydesk/internal/domain/resource"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

const (
	Slot         = "resources"
	ActivitySlot = "resource_activity"
)

func init() {
	utils.RegisterEnum("resource_category", func(s string) bool { return resource.Category(s).IsValid() })
	utils.RegisterEnum("resource_file_type", resource.IsAllowedFileType)
}

// Kind describes resource persistence and notifications.
func Kind() store.Kind[resource.Resource] {
	return store.Kind[resource.Resource]{
		Slot: Slot,
		Noun: "resource",
		ID:   func(r resource.Resource) string { return r.ID },
		Init: func(r *resource.Resource, id string, now time.Time) {
			r.ID, r.CreatedAt, r.UpdatedAt = id, now, now
		},
		UpdatedAt:    func(r resource.Resource) time.Time { return r.UpdatedAt },
		SetUpdatedAt: func(r *resource.Resource, at time.Time) { r.UpdatedAt = at },
		CreatedAt:    func(r resource.Resource) time.Time { return r.CreatedAt },
		SetCreatedAt: func(r *resource.Resource, at time.Time) { r.CreatedAt = at },
		Created: func(r resource.Resource) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeInfo,
				Title:   "New resource created",
				Message: fmt.Sprintf("Resource %q has been created", r.Title),
				Link:    "/resources/" + r.ID,
			}
		},
		Updated: func(before, _ resource.Resource) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeSuccess,
				Title:   "Resource updated",
				Message: fmt.Sprintf("Resource %q has been updated", before.Title),
				Link:    "/resources/" + before.ID,
			}
		},
		Deleted: func(r resource.Resource) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeWarning,
				Title:   "Resource deleted",
				Message: fmt.Sprintf("Resource %q has been deleted", r.Title),
			}
		},
	}
}

// ActivityKind persists the audit trail. Entries never notify.
func ActivityKind() store.Kind[resource.Activity] {
	return store.Kind[resource.Activity]{
		Slot: ActivitySlot,
		Noun: "resource activity",
		ID:   func(a resource.Activity) string { return a.ID },
		Init: func(a *resource.Activity, id string, now time.Time) {
			a.ID, a.At = id, now
		},
		UpdatedAt:    func(a resource.Activity) time.Time { return a.At },
		SetUpdatedAt: func(*resource.Activity, time.Time) {},
		CreatedAt:    func(a resource.Activity) time.Time { return a.At },
		SetCreatedAt: func(a *resource.Activity, at time.Time) { a.At = at },
	}
}

type CreateResourceCommand struct {
	BrandID     string            `json:"brandId" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Category    resource.Category `json:"category" validate:"required,resource_category"`
	FileType    string            `json:"fileType" validate:"required,resource_file_type"`
	FileURL     string            `json:"fileUrl" validate:"required"`
	FileSize    int64             `json:"fileSize" validate:"gte=0"`
}

type UploadResourceCommand struct {
	BrandID     string            `json:"brandId" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Category    resource.Category `json:"category" validate:"required,resource_category"`
}

// Directory answers whether an id names a stored record.
type Directory interface {
	Exists(id string) bool
}

type Service struct {
	resources *store.Store[resource.Resource]
	activity  *store.Store[resource.Activity]
	brands    Directory
	blobs     common.BlobStore
	ids       id.Generator
	clock     biztime.Clock
	logger    logger.Interface
}

type Option func(*Service)

func WithIDs(g id.Generator) Option { return func(s *Service) { s.ids = g } }

func WithClock(c biztime.Clock) Option { return func(s *Service) { s.clock = c } }

func NewService(
	resources *store.Store[resource.Resource],
	activity *store.Store[resource.Activity],
	brands Directory,
	blobs common.BlobStore,
	log logger.Interface,
	opts ...Option,
) *Service {
	s := &Service{
		resources: resources,
		activity:  activity,
		brands:    brands,
		blobs:     blobs,
		ids:       id.UUID(),
		clock:     biztime.System,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records a resource whose file already lives at cmd.FileURL.
func (s *Service) Create(ctx context.Context, cmd CreateResourceCommand) (resource.Resource, error) {
	s.logger.Infow("executing create resource", "title", cmd.Title, "brand_id", cmd.BrandID)

	author, err := common.RequireActor(ctx, "create resource")
	if err != nil {
		return resource.Resource{}, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create resource command", "error", err)
		return resource.Resource{}, err
	}
	if err := s.checkBrand(cmd.BrandID); err != nil {
		return resource.Resource{}, err
	}

	r, err := s.resources.Create(ctx, resource.Resource{
		BrandID:     cmd.BrandID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		FileType:    cmd.FileType,
		FileURL:     cmd.FileURL,
		FileSize:    cmd.FileSize,
		UploadedBy:  author.ID,
	})
	if err != nil {
		return resource.Resource{}, err
	}
	s.record(ctx, r, resource.ActivityCreated)
	return r, nil
}

// Upload stores the file bytes in the blob store, then records the metadata.
// A blob written before a failed metadata write is left in place.
func (s *Service) Upload(ctx context.Context, cmd UploadResourceCommand, file common.File) (resource.Resource, error) {
	s.logger.Infow("executing upload resource", "title", cmd.Title, "file", file.Name, "size", file.Size)

	if _, err := common.RequireActor(ctx, "upload resource"); err != nil {
		return resource.Resource{}, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return resource.Resource{}, err
	}
	if err := file.Validate(); err != nil {
		return resource.Resource{}, err
	}
	ext := resource.FileTypeOf(file.Name)
	if !resource.IsAllowedFileType(ext) {
		return resource.Resource{}, errors.NewValidationError("unsupported file type", ext)
	}
	if err := s.checkBrand(cmd.BrandID); err != nil {
		return resource.Resource{}, err
	}

	key := common.BlobKey("resources", s.ids.NewID(), file.Name)
	ref, err := s.blobs.Put(ctx, key, file.Reader, file.Size, resource.ContentType(ext))
	if err != nil {
		s.logger.Errorw("failed to store resource file", "key", key, "error", err)
		return resource.Resource{}, errors.NewInternalError("failed to store file", err.Error())
	}

	return s.Create(ctx, CreateResourceCommand{
		BrandID:     cmd.BrandID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Category:    cmd.Category,
		FileType:    ext,
		FileURL:     ref,
		FileSize:    file.Size,
	})
}

func (s *Service) Update(ctx context.Context, resourceID string, patch resource.Patch) (resource.Resource, error) {
	s.logger.Infow("executing update resource", "resource_id", resourceID)

	if err := utils.ValidateStruct(patch); err != nil {
		return resource.Resource{}, err
	}
	if patch.BrandID != nil {
		if err := s.checkBrand(*patch.BrandID); err != nil {
			return resource.Resource{}, err
		}
	}
	r, err := s.resources.Update(ctx, resourceID, func(r *resource.Resource) error {
		patch.Apply(r)
		return nil
	})
	if err != nil {
		return resource.Resource{}, err
	}
	s.record(ctx, r, resource.ActivityUpdated)
	return r, nil
}

func (s *Service) Delete(ctx context.Context, resourceID string) error {
	s.logger.Infow("executing delete resource", "resource_id", resourceID)

	r, err := s.resources.Delete(ctx, resourceID)
	if err != nil {
		return err
	}
	s.record(ctx, r, resource.ActivityDeleted)
	return nil
}

// RecordAccess stamps the actor and time of the latest download. It raises no
// notification.
func (s *Service) RecordAccess(ctx context.Context, resourceID string) (resource.Resource, error) {
	reader, err := common.RequireActor(ctx, "access resource")
	if err != nil {
		return resource.Resource{}, err
	}
	r, err := s.resources.UpdateNotify(ctx, resourceID, func(r *resource.Resource) error {
		at := s.clock.Now()
		r.LastAccessedBy, r.LastAccessedAt = reader.ID, &at
		return nil
	}, nil)
	if err != nil {
		return resource.Resource{}, err
	}
	s.record(ctx, r, resource.ActivityAccessed)
	return r, nil
}

func (s *Service) Get(resourceID string) (resource.Resource, error) {
	return s.resources.Get(resourceID)
}

// List returns resources, optionally narrowed to one brand and category.
func (s *Service) List(brandID string, category resource.Category) []resource.Resource {
	out := s.resources.Find(func(r resource.Resource) bool {
		return (brandID == "" || r.BrandID == brandID) && (category == "" || r.Category == category)
	})
	if out == nil {
		return []resource.Resource{}
	}
	return out
}

// Activity returns the most recent audit entries, newest first. limit <= 0
// returns all of them.
func (s *Service) Activity(limit int) []resource.Activity {
	all := s.activity.List()
	out := make([]resource.Activity, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// CountForBrand implements brand.Referrer.
func (s *Service) CountForBrand(brandID string) int {
	return len(s.resources.Find(func(r resource.Resource) bool { return r.BrandID == brandID }))
}

// DeleteForBrand implements brand.Referrer.
func (s *Service) DeleteForBrand(ctx context.Context, brandID string) error {
	for _, r := range s.resources.Find(func(r resource.Resource) bool { return r.BrandID == brandID }) {
		if err := s.Delete(ctx, r.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) checkBrand(brandID string) error {
	if s.brands != nil && !s.brands.Exists(brandID) {
		return errors.NewValidationError("unknown brand", brandID)
	}
	return nil
}

// record appends an audit entry. Failures are logged only; the resource
// change has already been persisted.
func (s *Service) record(ctx context.Context, r resource.Resource, action resource.ActivityAction) {
	entry := resource.Activity{ResourceID: r.ID, Title: r.Title, Action: action}
	if a, ok := actor.FromContext(ctx); ok {
		entry.UserID, entry.Username = a.ID, a.Username
	}
	if _, err := s.activity.Create(ctx, entry); err != nil {
		s.logger.Warnw("failed to record resource activity", "resource_id", r.ID, "action", action, "error", err)
	}
}
