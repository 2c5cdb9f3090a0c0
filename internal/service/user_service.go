package service

import (
	"context"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID    uint
	FirstName string
	LastName  string
	Bio       string
	AvatarURL string
	BannerURL string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int, currentUserID uint) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset, currentUserID)
}

func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset, currentUserID)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint, currentUserID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id, currentUserID)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username, currentUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxNameLen = 60

	if len(in.FirstName) > maxNameLen || len(in.LastName) > maxNameLen {
		return nil, models.NewValidationError("Name too long (max 60 characters)")
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.BannerURL != "" {
		user.BannerURL = in.BannerURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) SetAdmin(ctx context.Context, targetID uint, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID, 0)
	if err != nil {
		return nil, err
	}

	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// IsAdmin reports whether the user has the admin flag. Used as an injected
// check by services that allow admin overrides.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID, 0)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
