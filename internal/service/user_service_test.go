package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelshelf/internal/models"
)

func TestSearchUsersRequiresQuery(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.SearchUsers(context.Background(), "", 20, 0, 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.GetUserByUsername(context.Background(), "ghost", 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUpdateProfileOnlyOverwritesProvidedFields(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.User, error) {
		return &models.User{ID: id, FirstName: "Ada", Bio: "reader"}, nil
	}
	var updated *models.User
	userRepo.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}
	svc := NewUserService(userRepo)

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Bio:    "reader of long webnovels",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "reader of long webnovels", user.Bio)
}

func TestUpdateProfileRejectsOverlongBio(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Bio:    strings.Repeat("x", 501),
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestIsAdminReflectsUserFlag(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.User, error) {
		return &models.User{ID: id, IsAdmin: id == 2}, nil
	}
	svc := NewUserService(userRepo)

	admin, err := svc.IsAdmin(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = svc.IsAdmin(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, admin)
}
