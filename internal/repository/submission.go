package repository

import (
	"context"
	"errors"

	"novelshelf/internal/cache"
	"novelshelf/internal/models"
	"novelshelf/internal/observability"

	"gorm.io/gorm"
)

// SubmissionRepository defines the interface for novel submission operations
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.NovelSubmission) error
	GetByID(ctx context.Context, id uint) (*models.NovelSubmission, error)
	ListByStatus(ctx context.Context, status models.NovelSubmissionStatus, limit, offset int) ([]models.NovelSubmission, int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.NovelSubmission, error)
	Approve(ctx context.Context, id, reviewerID uint, feedback string) (*models.Novel, error)
	Reject(ctx context.Context, id, reviewerID uint, feedback string) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.NovelSubmission) error {
	submission.Status = models.NovelSubmissionStatusPending
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (*models.NovelSubmission, error) {
	var submission models.NovelSubmission
	if err := readDB(r.db).WithContext(ctx).
		Preload("SubmittedByUser").
		Preload("ReviewedByUser").
		First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Submission", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &submission, nil
}

func (r *submissionRepository) ListByStatus(ctx context.Context, status models.NovelSubmissionStatus, limit, offset int) ([]models.NovelSubmission, int64, error) {
	base := readDB(r.db).WithContext(ctx).
		Model(&models.NovelSubmission{}).
		Where("status = ?", status).
		Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var submissions []models.NovelSubmission
	if err := base.
		Preload("SubmittedByUser").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return submissions, count, nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.NovelSubmission, error) {
	var submissions []models.NovelSubmission
	if err := readDB(r.db).WithContext(ctx).
		Where("submitted_by_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return submissions, nil
}

// Approve promotes a pending submission into a catalog novel. The status
// check, novel insert and submission update happen in one transaction so two
// admins approving concurrently cannot create duplicate novels.
func (r *submissionRepository) Approve(ctx context.Context, id, reviewerID uint, feedback string) (*models.Novel, error) {
	var novel *models.Novel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission models.NovelSubmission
		if err := tx.Clauses(lockForUpdate()).First(&submission, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Submission", id)
			}
			return models.NewInternalError(err)
		}
		if submission.Status != models.NovelSubmissionStatusPending {
			return models.NewValidationError("Submission has already been reviewed")
		}

		novel = &models.Novel{
			Name:             submission.Name,
			AltNames:         submission.AltNames,
			OriginalLanguage: submission.OriginalLanguage,
			Authors:          submission.Authors,
			Genres:           submission.Genres,
			CoverURL:         submission.CoverURL,
			Synopsis:         submission.Synopsis,
			Year:             submission.Year,
			IsCompleted:      submission.IsCompleted,
			ChapterCount:     submission.ChapterCount,
		}
		if err := tx.Create(novel).Error; err != nil {
			return models.NewInternalError(err)
		}

		updates := map[string]interface{}{
			"status":              models.NovelSubmissionStatusApproved,
			"feedback":            feedback,
			"reviewed_by_user_id": reviewerID,
			"approved_novel_id":   novel.ID,
		}
		if err := tx.Model(&submission).Updates(updates).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.SubmissionsReviewed.WithLabelValues("approved").Inc()
	cache.Invalidate(ctx, cache.TagsKey)
	return novel, nil
}

func (r *submissionRepository) Reject(ctx context.Context, id, reviewerID uint, feedback string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission models.NovelSubmission
		if err := tx.Clauses(lockForUpdate()).First(&submission, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Submission", id)
			}
			return models.NewInternalError(err)
		}
		if submission.Status != models.NovelSubmissionStatusPending {
			return models.NewValidationError("Submission has already been reviewed")
		}

		updates := map[string]interface{}{
			"status":              models.NovelSubmissionStatusRejected,
			"feedback":            feedback,
			"reviewed_by_user_id": reviewerID,
		}
		if err := tx.Model(&submission).Updates(updates).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	observability.SubmissionsReviewed.WithLabelValues("rejected").Inc()
	return nil
}
