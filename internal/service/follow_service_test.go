package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelshelf/internal/models"
)

func TestToggleFollowRejectsSelfFollow(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())

	_, err := svc.ToggleFollow(context.Background(), 1, 1)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestToggleFollowFollowsWhenNotFollowing(t *testing.T) {
	followRepo := noopFollowRepo()
	followed, unfollowed := false, false
	followRepo.followFn = func(_ context.Context, followerID, followingID uint) error {
		followed = true
		assert.Equal(t, uint(1), followerID)
		assert.Equal(t, uint(2), followingID)
		return nil
	}
	followRepo.unfollowFn = func(context.Context, uint, uint) error {
		unfollowed = true
		return nil
	}
	svc := NewFollowService(followRepo, noopUserRepo())

	user, err := svc.ToggleFollow(context.Background(), 1, 2)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(2), user.ID)
	assert.True(t, followed)
	assert.False(t, unfollowed)
}

func TestToggleFollowUnfollowsWhenAlreadyFollowing(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.isFollowingFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
	unfollowed := false
	followRepo.unfollowFn = func(context.Context, uint, uint) error {
		unfollowed = true
		return nil
	}
	svc := NewFollowService(followRepo, noopUserRepo())

	_, err := svc.ToggleFollow(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.True(t, unfollowed)
}

func TestToggleFollowRequiresTargetUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewFollowService(noopFollowRepo(), userRepo)

	_, err := svc.ToggleFollow(context.Background(), 1, 99)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFollowersRequiresUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewFollowService(noopFollowRepo(), userRepo)

	_, err := svc.Followers(context.Background(), 99, 20, 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
