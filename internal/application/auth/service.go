// Package auth turns a known email into a signed session for its user. There
// are no passwords: knowing a staff email is enough to sign in.
package auth

import (
	"context"
	"strings"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/infrastructure/auth"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
)

// Users is the user lookup the service needs.
type Users interface {
	FindByEmail(email string) (user.User, error)
	Get(userID string) (user.User, error)
}

type TokenService interface {
	Generate(a actor.Actor) (*auth.Token, error)
	Verify(token string) (*auth.Claims, error)
}

type LoginCommand struct {
	Email string `json:"email" binding:"required,email"`
}

type Session struct {
	User  user.User   `json:"user"`
	Token *auth.Token `json:"token"`
}

type Service struct {
	users  Users
	tokens TokenService
	logger logger.Interface
}

func NewService(users Users, tokens TokenService, log logger.Interface) *Service {
	return &Service{users: users, tokens: tokens, logger: log}
}

func (s *Service) Login(_ context.Context, cmd LoginCommand) (*Session, error) {
	email := strings.TrimSpace(cmd.Email)
	s.logger.Infow("executing login", "email", email)

	u, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			s.logger.Warnw("login with unknown email", "email", email)
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	token, err := s.tokens.Generate(actor.FromUser(u))
	if err != nil {
		s.logger.Errorw("failed to issue token", "user_id", u.ID, "error", err)
		return nil, errors.NewInternalError("failed to issue token", err.Error())
	}

	s.logger.Infow("user logged in", "user_id", u.ID, "role", u.Role)
	return &Session{User: u, Token: token}, nil
}

// Authenticate resolves a bearer token to the actor it belongs to. The role is
// read from the current user record so demotions apply immediately.
func (s *Service) Authenticate(token string) (actor.Actor, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return actor.Actor{}, errors.NewUnauthorizedError("invalid or expired token")
	}

	u, err := s.users.Get(claims.UserID)
	if err != nil {
		return actor.Actor{}, errors.NewUnauthorizedError("user no longer exists")
	}
	return actor.FromUser(u), nil
}

// Me returns the user record of the actor in ctx.
func (s *Service) Me(ctx context.Context) (user.User, error) {
	a, ok := actor.FromContext(ctx)
	if !ok {
		return user.User{}, errors.NewNotAuthenticatedError()
	}
	return s.users.Get(a.ID)
}
