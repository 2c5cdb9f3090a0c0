package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelshelf/internal/models"
)

func TestSaveEntryDefaultsToPlanning(t *testing.T) {
	listRepo := noopListRepo()
	var saved *models.NovelListEntry
	listRepo.upsertFn = func(_ context.Context, entry *models.NovelListEntry) error {
		saved = entry
		return nil
	}
	svc := NewListService(listRepo, noopNovelRepo())

	_, err := svc.SaveEntry(context.Background(), SaveListEntryInput{UserID: 1, NovelID: 2})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, models.ReadingStatusPlanning, saved.Status)
}

func TestSaveEntryRejectsUnknownStatus(t *testing.T) {
	svc := NewListService(noopListRepo(), noopNovelRepo())

	_, err := svc.SaveEntry(context.Background(), SaveListEntryInput{
		UserID: 1, NovelID: 2, Status: "binge-reading",
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSaveEntryRejectsNegativeChapter(t *testing.T) {
	svc := NewListService(noopListRepo(), noopNovelRepo())

	_, err := svc.SaveEntry(context.Background(), SaveListEntryInput{
		UserID: 1, NovelID: 2, CurrentChapter: -3,
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSaveEntryRejectsScoreOutOfRange(t *testing.T) {
	svc := NewListService(noopListRepo(), noopNovelRepo())

	_, err := svc.SaveEntry(context.Background(), SaveListEntryInput{
		UserID: 1, NovelID: 2, Score: 5.5,
	})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSaveEntryRequiresCatalogNovel(t *testing.T) {
	novelRepo := noopNovelRepo()
	novelRepo.getByIDFn = func(_ context.Context, id uint) (*models.Novel, error) {
		return nil, models.NewNotFoundError("Novel", id)
	}
	upserted := false
	listRepo := noopListRepo()
	listRepo.upsertFn = func(context.Context, *models.NovelListEntry) error {
		upserted = true
		return nil
	}
	svc := NewListService(listRepo, novelRepo)

	_, err := svc.SaveEntry(context.Background(), SaveListEntryInput{UserID: 1, NovelID: 99})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.False(t, upserted)
}

func TestGetListRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewListService(noopListRepo(), noopNovelRepo())

	_, _, err := svc.GetList(context.Background(), GetListInput{UserID: 1, Status: "paused"})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestGetListAllowsEmptyStatusFilter(t *testing.T) {
	listRepo := noopListRepo()
	listRepo.getByUserIDFn = func(_ context.Context, userID uint, status models.ReadingStatus, _, _ int) ([]models.NovelListEntry, int64, error) {
		assert.Equal(t, models.ReadingStatus(""), status)
		return []models.NovelListEntry{{UserID: userID, NovelID: 1}}, 1, nil
	}
	svc := NewListService(listRepo, noopNovelRepo())

	entries, total, err := svc.GetList(context.Background(), GetListInput{UserID: 1})

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(1), total)
}
