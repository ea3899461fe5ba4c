// Package user manages agency staff accounts.
package user

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"agencydesk/internal/application/store"
	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/notification"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

const Slot = "users"

func init() {
	utils.RegisterEnum("user_role", func(s string) bool { return user.Role(s).IsValid() })
	utils.RegisterEnum("department", func(s string) bool { return user.Department(s).IsValid() })
}

// Kind describes user persistence. seed is written when the slot is empty.
func Kind(seed []user.User) store.Kind[user.User] {
	draft := func(title, format string, u user.User) notification.Draft {
		return notification.Draft{
			Type:    notification.TypeUser,
			Title:   title,
			Message: fmt.Sprintf(format, u.Username),
			Link:    "/settings",
		}
	}
	return store.Kind[user.User]{
		Slot: Slot,
		Noun: "user",
		ID:   func(u user.User) string { return u.ID },
		Init: func(u *user.User, id string, now time.Time) {
			u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
		},
		UpdatedAt:    func(u user.User) time.Time { return u.UpdatedAt },
		SetUpdatedAt: func(u *user.User, at time.Time) { u.UpdatedAt = at },
		CreatedAt:    func(u user.User) time.Time { return u.CreatedAt },
		SetCreatedAt: func(u *user.User, at time.Time) { u.CreatedAt = at },
		Clone:        user.User.Clone,
		Seed: func(now time.Time) []user.User {
			out := make([]user.User, len(seed))
			for i, u := range seed {
				out[i] = u.Clone()
				if out[i].CreatedAt.IsZero() {
					out[i].CreatedAt, out[i].UpdatedAt = now, now
				}
			}
			return out
		},
		Created: func(u user.User) notification.Draft {
			return draft("New user added", "User %s has been added", u)
		},
		Updated: func(before, _ user.User) notification.Draft {
			return draft("User updated", "User %s has been updated", before)
		},
		Deleted: func(u user.User) notification.Draft {
			return draft("User removed", "User %s has been removed", u)
		},
	}
}

type CreateUserCommand struct {
	Username   string          `json:"username" validate:"required,min=2"`
	Email      string          `json:"email" validate:"required,email"`
	Role       user.Role       `json:"role" validate:"required,user_role"`
	Department user.Department `json:"department" validate:"required,department"`
	BrandIDs   []string        `json:"brandIds"`
}

type Service struct {
	users  *store.Store[user.User]
	logger logger.Interface
}

func NewService(users *store.Store[user.User], log logger.Interface) *Service {
	return &Service{users: users, logger: log}
}

func (s *Service) Create(ctx context.Context, cmd CreateUserCommand) (user.User, error) {
	s.logger.Infow("executing create user", "username", cmd.Username)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create user command", "error", err)
		return user.User{}, err
	}
	if _, err := s.FindByEmail(cmd.Email); err == nil {
		return user.User{}, errors.NewConflictError("email already in use", cmd.Email)
	}

	brandIDs := slices.Clone(cmd.BrandIDs)
	if brandIDs == nil {
		brandIDs = []string{}
	}
	return s.users.Create(ctx, user.User{
		Username:   cmd.Username,
		Email:      cmd.Email,
		Role:       cmd.Role,
		Department: cmd.Department,
		BrandIDs:   brandIDs,
	})
}

func (s *Service) Update(ctx context.Context, userID string, patch user.Patch) (user.User, error) {
	s.logger.Infow("executing update user", "user_id", userID)

	if err := utils.ValidateStruct(patch); err != nil {
		return user.User{}, err
	}
	if patch.Email != nil {
		if other, err := s.FindByEmail(*patch.Email); err == nil && other.ID != userID {
			return user.User{}, errors.NewConflictError("email already in use", *patch.Email)
		}
	}
	return s.users.Update(ctx, userID, func(u *user.User) error {
		patch.Apply(u)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	s.logger.Infow("executing delete user", "user_id", userID)
	if a, ok := actor.FromContext(ctx); ok && a.ID == userID {
		return errors.NewForbiddenError("you cannot delete your own account")
	}
	_, err := s.users.Delete(ctx, userID)
	return err
}

func (s *Service) Get(userID string) (user.User, error) {
	return s.users.Get(userID)
}

// FindByEmail matches case-insensitively.
func (s *Service) FindByEmail(email string) (user.User, error) {
	found := s.users.Find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
	if len(found) == 0 {
		return user.User{}, errors.NewNotFoundError("user not found", email)
	}
	return found[0], nil
}

func (s *Service) List() []user.User {
	return s.users.List()
}

func (s *Service) Exists(userID string) bool {
	return s.users.Exists(userID)
}
