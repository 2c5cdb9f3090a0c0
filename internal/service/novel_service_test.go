package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
)

func TestGetNovelIncrementsPopularity(t *testing.T) {
	novelRepo := noopNovelRepo()
	bumped := false
	novelRepo.incrementPopularityFn = func(_ context.Context, id uint) error {
		bumped = true
		assert.Equal(t, uint(5), id)
		return nil
	}
	svc := NewNovelService(novelRepo, staticTagCache())

	novel, err := svc.GetNovel(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, uint(5), novel.ID)
	assert.True(t, bumped)
}

func TestListNovelsRejectsNegativeMinChapters(t *testing.T) {
	svc := NewNovelService(noopNovelRepo(), staticTagCache())

	_, _, err := svc.ListNovels(context.Background(), repository.CatalogFilter{MinChapters: -1})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateNovelNormalizesTags(t *testing.T) {
	novelRepo := noopNovelRepo()
	var created *models.Novel
	novelRepo.createFn = func(_ context.Context, n *models.Novel) error {
		created = n
		return nil
	}
	svc := NewNovelService(novelRepo, staticTagCache())

	_, err := svc.CreateNovel(context.Background(), SaveNovelInput{
		Name:   "Omniscient Reader's Viewpoint",
		Genres: []string{"Fantasy", " fantasy"},
		Tags:   []string{"System", "APOCALYPSE", "system"},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, []string{"fantasy"}, []string(created.Genres))
	assert.Equal(t, []string{"system", "apocalypse"}, []string(created.Tags))
}

func TestCreateNovelRejectsEmptyName(t *testing.T) {
	svc := NewNovelService(noopNovelRepo(), staticTagCache())

	_, err := svc.CreateNovel(context.Background(), SaveNovelInput{})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestTagSuggestionsComeFromCache(t *testing.T) {
	svc := NewNovelService(noopNovelRepo(), staticTagCache("fantasy", "xianxia"))

	tags, err := svc.TagSuggestions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"fantasy", "xianxia"}, tags)
}

func TestRecommendationsSkipRemovedNovels(t *testing.T) {
	novelRepo := noopNovelRepo()
	novelRepo.getByIDFn = func(_ context.Context, id uint) (*models.Novel, error) {
		switch id {
		case 1:
			return &models.Novel{ID: 1, RecommendedIDs: []int64{2, 3, 4}}, nil
		case 3:
			return nil, models.NewNotFoundError("Novel", id)
		default:
			return &models.Novel{ID: id}, nil
		}
	}
	svc := NewNovelService(novelRepo, staticTagCache())

	recs, err := svc.Recommendations(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, uint(2), recs[0].ID)
	assert.Equal(t, uint(4), recs[1].ID)
}

func TestAddTagsDeduplicatesAgainstExisting(t *testing.T) {
	novelRepo := noopNovelRepo()
	novelRepo.getByIDFn = func(_ context.Context, id uint) (*models.Novel, error) {
		return &models.Novel{ID: id, Tags: []string{"system", "dungeon"}}, nil
	}
	var updated *models.Novel
	novelRepo.updateFn = func(_ context.Context, n *models.Novel) error {
		updated = n
		return nil
	}
	svc := NewNovelService(novelRepo, staticTagCache())

	novel, err := svc.AddTags(context.Background(), 1, []string{" Dungeon ", "Regression"})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, []string{"system", "dungeon", "regression"}, []string(novel.Tags))
}

func TestAddTagsRequiresAtLeastOneTag(t *testing.T) {
	svc := NewNovelService(noopNovelRepo(), staticTagCache())

	_, err := svc.AddTags(context.Background(), 1, []string{"", "  "})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestDeleteNovelRequiresExisting(t *testing.T) {
	novelRepo := noopNovelRepo()
	novelRepo.getByIDFn = func(_ context.Context, id uint) (*models.Novel, error) {
		return nil, models.NewNotFoundError("Novel", id)
	}
	deleted := false
	novelRepo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}
	svc := NewNovelService(novelRepo, staticTagCache())

	err := svc.DeleteNovel(context.Background(), 99)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.False(t, deleted)
}
