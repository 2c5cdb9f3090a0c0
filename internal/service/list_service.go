package service

import (
	"context"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
)

// ListService manages per-user reading lists.
type ListService struct {
	listRepo  repository.NovelListRepository
	novelRepo repository.NovelRepository
}

type SaveListEntryInput struct {
	UserID         uint
	NovelID        uint
	Status         models.ReadingStatus `json:"status"`
	CurrentChapter int                  `json:"current_chapter"`
	Score          float64              `json:"score"`
	Notes          string               `json:"notes"`
	Favorite       bool                 `json:"favorite"`
}

type GetListInput struct {
	UserID uint
	Status models.ReadingStatus
	Limit  int
	Offset int
}

func NewListService(listRepo repository.NovelListRepository, novelRepo repository.NovelRepository) *ListService {
	return &ListService{listRepo: listRepo, novelRepo: novelRepo}
}

// SaveEntry adds the novel to the user's list or updates the existing entry.
// The write is an upsert, so repeated adds collapse to one row.
func (s *ListService) SaveEntry(ctx context.Context, in SaveListEntryInput) (*models.NovelListEntry, error) {
	if in.Status == "" {
		in.Status = models.ReadingStatusPlanning
	}
	if !models.ValidReadingStatus(in.Status) {
		return nil, models.NewValidationError("Invalid reading status")
	}
	if in.CurrentChapter < 0 {
		return nil, models.NewValidationError("current_chapter cannot be negative")
	}
	if in.Score < 0 || in.Score > 5 {
		return nil, models.NewValidationError("score must be between 0 and 5")
	}

	// Entries can only reference catalog novels
	if _, err := s.novelRepo.GetByID(ctx, in.NovelID); err != nil {
		return nil, err
	}

	entry := &models.NovelListEntry{
		UserID:         in.UserID,
		NovelID:        in.NovelID,
		Status:         in.Status,
		CurrentChapter: in.CurrentChapter,
		Score:          in.Score,
		Notes:          in.Notes,
		Favorite:       in.Favorite,
	}
	if err := s.listRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return s.listRepo.GetEntry(ctx, in.UserID, in.NovelID)
}

func (s *ListService) GetList(ctx context.Context, in GetListInput) ([]models.NovelListEntry, int64, error) {
	if in.Status != "" && !models.ValidReadingStatus(in.Status) {
		return nil, 0, models.NewValidationError("Invalid reading status")
	}
	return s.listRepo.GetByUserID(ctx, in.UserID, in.Status, in.Limit, in.Offset)
}

func (s *ListService) GetEntry(ctx context.Context, userID, novelID uint) (*models.NovelListEntry, error) {
	return s.listRepo.GetEntry(ctx, userID, novelID)
}

func (s *ListService) RemoveEntry(ctx context.Context, userID, novelID uint) error {
	return s.listRepo.Delete(ctx, userID, novelID)
}

func (s *ListService) Favorites(ctx context.Context, userID uint, limit, offset int) ([]models.NovelListEntry, error) {
	return s.listRepo.GetFavorites(ctx, userID, limit, offset)
}

// Stats returns per-status entry counts for profile pages.
func (s *ListService) Stats(ctx context.Context, userID uint) (map[models.ReadingStatus]int64, error) {
	return s.listRepo.StatusCounts(ctx, userID)
}
