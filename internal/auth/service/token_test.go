package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"busline/internal/store"
	apperrors "busline/pkg/errors"
	"busline/pkg/logger"
	"busline/pkg/model"
)

type mockUserFinder struct {
	findByID func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByID(ctx, id)
}

func newTestService(users UserFinder, now time.Time) *tokenService {
	svc := NewTokenService(users, "test-secret", time.Hour, logger.New(logger.Config{Output: io.Discard})).(*tokenService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssue_TokenCarriesSubjectAndRole(t *testing.T) {
	userID := primitive.NewObjectID()
	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	svc := newTestService(&mockUserFinder{
		findByID: func(_ context.Context, id string) (*model.User, error) {
			assert.Equal(t, userID.Hex(), id)
			user := &model.User{Name: "Staff One", Email: "staff@example.com", Role: "staff"}
			user.SetID(userID)
			return user, nil
		},
	}, issued)

	token, err := svc.Issue(context.Background(), userID.Hex())
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.Subject)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, issued.Add(time.Hour), claims.ExpiresAt.Time)
}

func TestIssue_MissingUserIsUniformTokenError(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	svc := newTestService(&mockUserFinder{
		findByID: func(_ context.Context, gotID string) (*model.User, error) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, gotID)
		},
	}, time.Now())

	_, err := svc.Issue(context.Background(), id)

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code, "missing user must be indistinguishable from a signing failure")
	assert.Equal(t, "Failed to generate token", appErr.Message)
}

func TestIssue_StoreFailureIsUniformTokenError(t *testing.T) {
	svc := newTestService(&mockUserFinder{
		findByID: func(context.Context, string) (*model.User, error) {
			return nil, errors.New("connection reset")
		},
	}, time.Now())

	_, err := svc.Issue(context.Background(), primitive.NewObjectID().Hex())

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)
	assert.Equal(t, "Failed to generate token", appErr.Message)
}

func TestParse_ExpiredToken(t *testing.T) {
	userID := primitive.NewObjectID()
	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	svc := newTestService(&mockUserFinder{
		findByID: func(context.Context, string) (*model.User, error) {
			user := &model.User{Name: "U", Email: "u@example.com", Role: "customer"}
			user.SetID(userID)
			return user, nil
		},
	}, issued)

	token, err := svc.Issue(context.Background(), userID.Hex())
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Parse(token)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.AsAppError(err).Code)
}

func TestParse_WrongSecret(t *testing.T) {
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "someone"})
	token, err := other.SignedString([]byte("a-different-secret"))
	require.NoError(t, err)

	svc := newTestService(&mockUserFinder{}, time.Now())
	_, err = svc.Parse(token)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.AsAppError(err).Code)
}

func TestIssue_EmptyUserID(t *testing.T) {
	svc := newTestService(&mockUserFinder{}, time.Now())

	_, err := svc.Issue(context.Background(), "")

	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}
