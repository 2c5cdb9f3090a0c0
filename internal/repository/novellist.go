package repository

import (
	"context"
	"errors"

	"novelshelf/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NovelListRepository defines the interface for reading list operations
type NovelListRepository interface {
	Upsert(ctx context.Context, entry *models.NovelListEntry) error
	GetEntry(ctx context.Context, userID, novelID uint) (*models.NovelListEntry, error)
	GetByUserID(ctx context.Context, userID uint, status models.ReadingStatus, limit, offset int) ([]models.NovelListEntry, int64, error)
	GetFavorites(ctx context.Context, userID uint, limit, offset int) ([]models.NovelListEntry, error)
	Delete(ctx context.Context, userID, novelID uint) error
	StatusCounts(ctx context.Context, userID uint) (map[models.ReadingStatus]int64, error)
}

type novelListRepository struct {
	db *gorm.DB
}

// NewNovelListRepository creates a new reading list repository
func NewNovelListRepository(db *gorm.DB) NovelListRepository {
	return &novelListRepository{db: db}
}

// Upsert inserts or updates the (user, novel) entry in one statement, keyed
// on the unique composite index. Adding a novel twice can therefore never
// produce two rows, regardless of request interleaving.
func (r *novelListRepository) Upsert(ctx context.Context, entry *models.NovelListEntry) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "novel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "current_chapter", "score", "notes", "favorite", "updated_at",
			}),
		}).
		Create(entry).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *novelListRepository) GetEntry(ctx context.Context, userID, novelID uint) (*models.NovelListEntry, error) {
	var entry models.NovelListEntry
	if err := readDB(r.db).WithContext(ctx).
		Preload("Novel").
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("List entry", novelID)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *novelListRepository) GetByUserID(ctx context.Context, userID uint, status models.ReadingStatus, limit, offset int) ([]models.NovelListEntry, int64, error) {
	base := readDB(r.db).WithContext(ctx).
		Model(&models.NovelListEntry{}).
		Where("user_id = ?", userID)
	if status != "" {
		base = base.Where("status = ?", status)
	}
	base = base.Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var entries []models.NovelListEntry
	if err := base.
		Preload("Novel").
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return entries, count, nil
}

func (r *novelListRepository) GetFavorites(ctx context.Context, userID uint, limit, offset int) ([]models.NovelListEntry, error) {
	var entries []models.NovelListEntry
	if err := readDB(r.db).WithContext(ctx).
		Preload("Novel").
		Where("user_id = ? AND favorite = ?", userID, true).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *novelListRepository) Delete(ctx context.Context, userID, novelID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Delete(&models.NovelListEntry{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("List entry", novelID)
	}
	return nil
}

func (r *novelListRepository) StatusCounts(ctx context.Context, userID uint) (map[models.ReadingStatus]int64, error) {
	type row struct {
		Status models.ReadingStatus
		Count  int64
	}
	var rows []row
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.NovelListEntry{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.ReadingStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
