package service

import (
	"context"

	"github.com/lib/pq"

	"novelshelf/internal/cache"
	"novelshelf/internal/models"
	"novelshelf/internal/repository"
	"novelshelf/internal/validation"
)

// SubmissionService handles user novel submissions and their admin review.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	tagCache       *cache.TagCache
}

type SubmitNovelInput struct {
	UserID           uint
	Name             string   `json:"name"`
	AltNames         []string `json:"alt_names"`
	OriginalLanguage string   `json:"original_language"`
	Authors          []string `json:"authors"`
	Genres           []string `json:"genres"`
	CoverURL         string   `json:"cover_url"`
	Synopsis         string   `json:"synopsis"`
	Year             int      `json:"year"`
	IsCompleted      bool     `json:"is_completed"`
	ChapterCount     int      `json:"chapter_count"`
}

type ReviewSubmissionInput struct {
	SubmissionID uint
	ReviewerID   uint
	Feedback     string
}

func NewSubmissionService(submissionRepo repository.SubmissionRepository, tagCache *cache.TagCache) *SubmissionService {
	return &SubmissionService{submissionRepo: submissionRepo, tagCache: tagCache}
}

func (s *SubmissionService) Submit(ctx context.Context, in SubmitNovelInput) (*models.NovelSubmission, error) {
	if err := validation.ValidateNovelName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateYear(in.Year); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.ChapterCount < 0 {
		return nil, models.NewValidationError("chapter_count cannot be negative")
	}

	submission := &models.NovelSubmission{
		Name:              in.Name,
		AltNames:          pq.StringArray(in.AltNames),
		OriginalLanguage:  in.OriginalLanguage,
		Authors:           pq.StringArray(in.Authors),
		Genres:            pq.StringArray(validation.NormalizeTags(in.Genres)),
		CoverURL:          in.CoverURL,
		Synopsis:          in.Synopsis,
		Year:              in.Year,
		IsCompleted:       in.IsCompleted,
		ChapterCount:      in.ChapterCount,
		SubmittedByUserID: in.UserID,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) MySubmissions(ctx context.Context, userID uint, limit, offset int) ([]models.NovelSubmission, error) {
	return s.submissionRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id uint) (*models.NovelSubmission, error) {
	return s.submissionRepo.GetByID(ctx, id)
}

// Queue returns the review queue filtered by status, oldest first. An empty
// status means pending, since that is what moderators work through.
func (s *SubmissionService) Queue(ctx context.Context, status models.NovelSubmissionStatus, limit, offset int) ([]models.NovelSubmission, int64, error) {
	if status == "" {
		status = models.NovelSubmissionStatusPending
	}
	switch status {
	case models.NovelSubmissionStatusPending, models.NovelSubmissionStatusApproved, models.NovelSubmissionStatusRejected:
	default:
		return nil, 0, models.NewValidationError("Status must be 'pending', 'approved' or 'rejected'")
	}
	return s.submissionRepo.ListByStatus(ctx, status, limit, offset)
}

func (s *SubmissionService) Approve(ctx context.Context, in ReviewSubmissionInput) (*models.Novel, error) {
	novel, err := s.submissionRepo.Approve(ctx, in.SubmissionID, in.ReviewerID, in.Feedback)
	if err != nil {
		return nil, err
	}
	// The new novel's genres may introduce tags; refresh so suggestions pick
	// them up immediately.
	if err := s.tagCache.Refresh(ctx); err != nil {
		return nil, err
	}
	return novel, nil
}

func (s *SubmissionService) Reject(ctx context.Context, in ReviewSubmissionInput) error {
	if in.Feedback == "" {
		return models.NewValidationError("Feedback is required when rejecting a submission")
	}
	return s.submissionRepo.Reject(ctx, in.SubmissionID, in.ReviewerID, in.Feedback)
}
