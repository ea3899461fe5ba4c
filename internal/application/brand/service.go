// Package brand manages client brands and what happens to their tickets,
// resources and submissions when a brand goes away.
package brand

import (
	"context"
	"fmt"
	"time"

	"agencydesk/internal/application/store"
	"agencydesk/internal/domain/brand"
	"agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

// Slot is the persistence slot for brands.
const Slot = "brands"

func init() {
	utils.RegisterEnum("brand_sector", func(s string) bool { return brand.Sector(s).IsValid() })
}

// Kind describes brand persistence and notifications. seed is the bootstrap set
// written when the slot is empty.
func Kind(seed []brand.Brand) store.Kind[brand.Brand] {
	return store.Kind[brand.Brand]{
		Slot: Slot,
		Noun: "brand",
		ID:   func(b brand.Brand) string { return b.ID },
		Init: func(b *brand.Brand, id string, now time.Time) {
			b.ID, b.CreatedAt, b.UpdatedAt = id, now, now
		},
		UpdatedAt:    func(b brand.Brand) time.Time { return b.UpdatedAt },
		SetUpdatedAt: func(b *brand.Brand, at time.Time) { b.UpdatedAt = at },
		CreatedAt:    func(b brand.Brand) time.Time { return b.CreatedAt },
		SetCreatedAt: func(b *brand.Brand, at time.Time) { b.CreatedAt = at },
		Seed: func(now time.Time) []brand.Brand {
			out := append([]brand.Brand(nil), seed...)
			for i := range out {
				if out[i].CreatedAt.IsZero() {
					out[i].CreatedAt, out[i].UpdatedAt = now, now
				}
			}
			return out
		},
		Created: func(b brand.Brand) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeBrand,
				Title:   "New brand added",
				Message: fmt.Sprintf("Brand %s has been added to the platform", b.Name),
				Link:    "/settings",
			}
		},
		Updated: func(before, _ brand.Brand) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeBrand,
				Title:   "Brand updated",
				Message: fmt.Sprintf("Details of %s have been updated", before.Name),
				Link:    "/settings",
			}
		},
		Deleted: func(b brand.Brand) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeBrand,
				Title:   "Brand deleted",
				Message: fmt.Sprintf("Brand %s has been deleted", b.Name),
				Link:    "/settings",
			}
		},
	}
}

// Referrer is a collection whose records point at brands.
type Referrer interface {
	// CountForBrand returns how many records reference brandID.
	CountForBrand(brandID string) int
	// DeleteForBrand removes every record referencing brandID.
	DeleteForBrand(ctx context.Context, brandID string) error
}

type CreateBrandCommand struct {
	Name           string        `json:"name" validate:"required"`
	Sector         brand.Sector  `json:"sector" validate:"required,brand_sector"`
	Website        string        `json:"website"`
	Description    string        `json:"description"`
	PrimaryContact brand.Contact `json:"primaryContact" validate:"-"`
}

type Service struct {
	brands    *store.Store[brand.Brand]
	policy    brand.DeletePolicy
	referrers []Referrer
	logger    logger.Interface
}

func NewService(brands *store.Store[brand.Brand], policy brand.DeletePolicy, log logger.Interface) *Service {
	if !policy.IsValid() {
		policy = brand.DeleteAllowOrphans
	}
	return &Service{brands: brands, policy: policy, logger: log}
}

// AddReferrers registers the collections consulted on delete.
func (s *Service) AddReferrers(refs ...Referrer) {
	s.referrers = append(s.referrers, refs...)
}

func (s *Service) Policy() brand.DeletePolicy { return s.policy }

func (s *Service) Create(ctx context.Context, cmd CreateBrandCommand) (brand.Brand, error) {
	s.logger.Infow("executing create brand", "name", cmd.Name)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create brand command", "error", err)
		return brand.Brand{}, err
	}
	if cmd.PrimaryContact != (brand.Contact{}) {
		if err := utils.ValidateStruct(cmd.PrimaryContact); err != nil {
			return brand.Brand{}, err
		}
	}

	return s.brands.Create(ctx, brand.Brand{
		Name:           cmd.Name,
		Sector:         cmd.Sector,
		Website:        cmd.Website,
		Description:    cmd.Description,
		PrimaryContact: cmd.PrimaryContact,
	})
}

func (s *Service) Update(ctx context.Context, brandID string, patch brand.Patch) (brand.Brand, error) {
	if err := utils.ValidateStruct(patch); err != nil {
		return brand.Brand{}, err
	}
	if patch.PrimaryContact != nil {
		if err := utils.ValidateStruct(*patch.PrimaryContact); err != nil {
			return brand.Brand{}, err
		}
	}
	return s.brands.Update(ctx, brandID, func(b *brand.Brand) error {
		patch.Apply(b)
		return nil
	})
}

// Delete removes a brand following the configured DeletePolicy.
func (s *Service) Delete(ctx context.Context, brandID string) error {
	if !s.brands.Exists(brandID) {
		return errors.NewNotFoundError("brand not found", brandID)
	}

	switch s.policy {
	case brand.DeleteReject:
		if n := s.references(brandID); n > 0 {
			s.logger.Warnw("brand delete rejected", "brand_id", brandID, "references", n)
			return errors.NewConflictError("brand is still referenced",
				fmt.Sprintf("%d records reference brand %s", n, brandID))
		}
	case brand.DeleteCascade:
		for _, ref := range s.referrers {
			if err := ref.DeleteForBrand(ctx, brandID); err != nil {
				s.logger.Errorw("cascade delete failed", "brand_id", brandID, "error", err)
				return err
			}
		}
	}

	_, err := s.brands.Delete(ctx, brandID)
	return err
}

func (s *Service) Get(brandID string) (brand.Brand, error) {
	return s.brands.Get(brandID)
}

func (s *Service) List() []brand.Brand {
	return s.brands.List()
}

// Exists reports whether brandID names a stored brand.
func (s *Service) Exists(brandID string) bool {
	return s.brands.Exists(brandID)
}

func (s *Service) references(brandID string) int {
	total := 0
	for _, ref := range s.referrers {
		total += ref.CountForBrand(brandID)
	}
	return total
}
