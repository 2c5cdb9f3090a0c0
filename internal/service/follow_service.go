package service

import (
	"context"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
)

// FollowService manages follow edges between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// ToggleFollow follows the target if not already followed, otherwise
// unfollows. Returns the target user with fresh counts.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, followingID uint) (*models.User, error) {
	if followerID == followingID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	// The target must exist
	if _, err := s.userRepo.GetByID(ctx, followingID, 0); err != nil {
		return nil, err
	}

	following, err := s.followRepo.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}

	if following {
		if err := s.followRepo.Unfollow(ctx, followerID, followingID); err != nil {
			return nil, err
		}
	} else {
		if err := s.followRepo.Follow(ctx, followerID, followingID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, followingID, followerID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID, 0); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, userID, limit, offset)
}

func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID, 0); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, userID, limit, offset)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followingID)
}
