package repository

import (
	"context"
	"errors"

	"novelshelf/internal/cache"
	"novelshelf/internal/models"
	"novelshelf/internal/observability"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Review, error)
	GetByNovelID(ctx context.Context, novelID uint, limit, offset int, currentUserID uint, sort string) ([]*models.Review, int64, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error)
	GetUserReviewForNovel(ctx context.Context, userID, novelID uint) (*models.Review, error)
	Like(ctx context.Context, userID, reviewID uint) error
	Unlike(ctx context.Context, userID, reviewID uint) error
	IsLiked(ctx context.Context, userID, reviewID uint) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// applyReviewDetails adds subqueries to fetch the like count and liked status
// in a single query.
func (r *reviewRepository) applyReviewDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "reviews.*, " +
		"(SELECT COUNT(*) FROM review_likes WHERE review_likes.review_id = reviews.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM review_likes WHERE review_likes.review_id = reviews.id AND review_likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// recomputeNovelRating rewrites the novel's aggregate from the live review
// rows inside the caller's transaction, so the stored rating always matches
// the reviews that exist.
func recomputeNovelRating(tx *gorm.DB, novelID uint) error {
	return tx.Exec(
		`UPDATE novels SET
			rating = COALESCE((SELECT ROUND(AVG(overall)::numeric, 1) FROM reviews WHERE novel_id = ? AND deleted_at IS NULL), 0),
			rating_votes = (SELECT COUNT(*) FROM reviews WHERE novel_id = ? AND deleted_at IS NULL)
		 WHERE id = ?`,
		novelID, novelID, novelID,
	).Error
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewValidationError("You have already reviewed this novel")
			}
			return models.NewInternalError(err)
		}
		if err := recomputeNovelRating(tx, review.NovelID); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateNovel(ctx, review.NovelID)
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := recomputeNovelRating(tx, review.NovelID); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ReviewKey(review.ID))
	cache.InvalidateNovel(ctx, review.NovelID)
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	var novelID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Review", id)
			}
			return models.NewInternalError(err)
		}
		novelID = review.NovelID

		if err := tx.Delete(&review).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := recomputeNovelRating(tx, novelID); err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ReviewKey(id))
	cache.InvalidateNovel(ctx, novelID)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Review, error) {
	var review models.Review
	if err := r.applyReviewDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) GetByNovelID(ctx context.Context, novelID uint, limit, offset int, currentUserID uint, sort string) ([]*models.Review, int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Review{}).
		Where("novel_id = ?", novelID).
		Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	base := r.applyReviewDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Where("novel_id = ?", novelID)

	// likes_count is a SELECT alias from applyReviewDetails; PostgreSQL allows
	// referencing it in ORDER BY within the same query level.
	switch sort {
	case "top":
		base = base.Order("likes_count DESC, created_at DESC")
	case "rating":
		base = base.Order("overall DESC, created_at DESC")
	default: // "new"
		base = base.Order("created_at DESC")
	}

	var reviews []*models.Review
	if err := base.Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return reviews, count, nil
}

func (r *reviewRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error) {
	var reviews []*models.Review
	if err := r.applyReviewDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("Novel").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) GetUserReviewForNovel(ctx context.Context, userID, novelID uint) (*models.Review, error) {
	var review models.Review
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) Like(ctx context.Context, userID, reviewID uint) error {
	// Atomic insert; liking twice is a no-op instead of a duplicate key error
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO review_likes (user_id, review_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, review_id) DO NOTHING`,
		userID, reviewID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	observability.LikeToggles.WithLabelValues("review", "like").Inc()
	cache.Invalidate(ctx, cache.ReviewKey(reviewID))
	return nil
}

func (r *reviewRepository) Unlike(ctx context.Context, userID, reviewID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&models.ReviewLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	observability.LikeToggles.WithLabelValues("review", "unlike").Inc()
	cache.Invalidate(ctx, cache.ReviewKey(reviewID))
	return nil
}

func (r *reviewRepository) IsLiked(ctx context.Context, userID, reviewID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.ReviewLike{}).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
