// Package service issues and verifies the signed credentials callers use
// to authenticate. A token carries the user's identifier as subject and
// their role as a custom claim, valid for a fixed window from issuance.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "busline/pkg/errors"
	"busline/pkg/logger"
	"busline/pkg/model"
)

// UserFinder loads the user a token is issued for; *store.Collection[model.User]
// satisfies it.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Claims is the token payload: registered claims plus the user's role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(ctx context.Context, userID string) (string, error)
	Parse(token string) (*Claims, error)
}

type tokenService struct {
	users  UserFinder
	secret []byte
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time
}

func NewTokenService(users UserFinder, secret string, ttl time.Duration, log *logger.Logger) TokenService {
	return &tokenService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// Issue loads the user and signs a credential for them. Every failure mode
// is reported as the same token-generation error: a caller probing this
// endpoint cannot tell a missing user from a signing fault.
func (s *tokenService) Issue(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Warn("Token issuance failed", "user_id", userID, "error", err)
		return "", apperrors.Internal("Failed to generate token", err)
	}

	now := s.now().UTC()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.log.Error("Token signing failed", "user_id", userID, "error", err)
		return "", apperrors.Internal("Failed to generate token", err)
	}

	s.log.Info("Token issued", "user_id", userID, "role", user.Role)
	return signed, nil
}

func (s *tokenService) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}
