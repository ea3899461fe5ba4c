// Package auth signs and verifies the bearer tokens carrying the actor.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/shared/biztime"
)

type Claims struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor returns the identity the token was issued for.
func (c *Claims) Actor() actor.Actor {
	return actor.Actor{ID: c.UserID, Username: c.Username, Role: c.Role}
}

type Token struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type JWTService struct {
	secret           []byte
	issuer           string
	accessExpMinutes int
	clock            biztime.Clock
}

func NewJWTService(secret, issuer string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		issuer:           issuer,
		accessExpMinutes: accessExpMinutes,
		clock:            biztime.System,
	}
}

func (s *JWTService) Generate(a actor.Actor) (*Token, error) {
	signed, err := s.sign(a)
	if err != nil {
		return nil, err
	}
	return &Token{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) sign(a actor.Actor) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		UserID:   a.ID,
		Username: a.Username,
		Role:     a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   a.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.clock.Now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// ShouldRefresh reports whether the token expires within five minutes.
func (s *JWTService) ShouldRefresh(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	threshold := 5 * time.Minute
	return s.clock.Now().Add(threshold).After(claims.ExpiresAt.Time)
}

// RefreshAccessToken issues a new token for the same actor.
func (s *JWTService) RefreshAccessToken(claims *Claims) (string, error) {
	return s.sign(claims.Actor())
}
