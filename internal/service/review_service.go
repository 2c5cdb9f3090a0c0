package service

import (
	"context"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
	"novelshelf/internal/validation"
)

// ReviewService handles novel reviews and their like toggles.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	novelRepo  repository.NovelRepository
	isAdmin    func(ctx context.Context, userID uint) (bool, error)
}

type SaveReviewInput struct {
	UserID     uint
	NovelID    uint
	Plot       float64 `json:"plot"`
	Characters float64 `json:"characters"`
	World      float64 `json:"world"`
	Grammar    float64 `json:"grammar"`
	Content    string  `json:"content"`
}

type ListReviewsInput struct {
	NovelID       uint
	Limit         int
	Offset        int
	CurrentUserID uint
	Sort          string
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	novelRepo repository.NovelRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		novelRepo:  novelRepo,
		isAdmin:    isAdmin,
	}
}

const maxReviewLen = 20000

func validateRatings(in SaveReviewInput) error {
	for _, r := range []struct {
		field string
		value float64
	}{
		{"plot", in.Plot},
		{"characters", in.Characters},
		{"world", in.World},
		{"grammar", in.Grammar},
	} {
		if err := validation.ValidateRating(r.field, r.value); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	if len(in.Content) > maxReviewLen {
		return models.NewValidationError("Review too long (max 20000 characters)")
	}
	return nil
}

// CreateReview writes the review; the repository recomputes the novel's
// aggregate rating in the same transaction.
func (s *ReviewService) CreateReview(ctx context.Context, in SaveReviewInput) (*models.Review, error) {
	if err := validateRatings(in); err != nil {
		return nil, err
	}

	// Reviews can only target catalog novels
	if _, err := s.novelRepo.GetByID(ctx, in.NovelID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:     in.UserID,
		NovelID:    in.NovelID,
		Plot:       in.Plot,
		Characters: in.Characters,
		World:      in.World,
		Grammar:    in.Grammar,
		Content:    in.Content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, review.ID, in.UserID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, reviewID uint, in SaveReviewInput) (*models.Review, error) {
	if err := validateRatings(in); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID, in.UserID)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own reviews")
	}

	review.Plot = in.Plot
	review.Characters = in.Characters
	review.World = in.World
	review.Grammar = in.Grammar
	review.Content = in.Content

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, reviewID, in.UserID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID, userID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own reviews")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own reviews")
		}
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *ReviewService) GetReview(ctx context.Context, id uint, currentUserID uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id, currentUserID)
}

func (s *ReviewService) NovelReviews(ctx context.Context, in ListReviewsInput) ([]*models.Review, int64, error) {
	return s.reviewRepo.GetByNovelID(ctx, in.NovelID, in.Limit, in.Offset, in.CurrentUserID, in.Sort)
}

func (s *ReviewService) UserReviews(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error) {
	return s.reviewRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// ToggleLike flips the user's like on a review and returns the fresh state.
func (s *ReviewService) ToggleLike(ctx context.Context, userID, reviewID uint) (*models.Review, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	isLiked, err := s.reviewRepo.IsLiked(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.reviewRepo.Unlike(ctx, userID, reviewID); err != nil {
			return nil, err
		}
	} else {
		if err := s.reviewRepo.Like(ctx, userID, reviewID); err != nil {
			return nil, err
		}
	}

	return s.reviewRepo.GetByID(ctx, reviewID, userID)
}
