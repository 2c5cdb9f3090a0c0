package service

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"novelshelf/internal/cache"
	"novelshelf/internal/models"
	"novelshelf/internal/repository"
	"novelshelf/internal/validation"
)

// NovelService serves the catalog: browse, search, tag suggestions and the
// admin-only direct CRUD operations.
type NovelService struct {
	novelRepo repository.NovelRepository
	tagCache  *cache.TagCache
}

type SaveNovelInput struct {
	Name             string   `json:"name"`
	AltNames         []string `json:"alt_names"`
	OriginalLanguage string   `json:"original_language"`
	Authors          []string `json:"authors"`
	Genres           []string `json:"genres"`
	Tags             []string `json:"tags"`
	CoverURL         string   `json:"cover_url"`
	Synopsis         string   `json:"synopsis"`
	Year             int      `json:"year"`
	IsCompleted      bool     `json:"is_completed"`
	IsLicensed       bool     `json:"is_licensed"`
	ChapterCount     int      `json:"chapter_count"`
}

func NewNovelService(novelRepo repository.NovelRepository, tagCache *cache.TagCache) *NovelService {
	return &NovelService{novelRepo: novelRepo, tagCache: tagCache}
}

func (s *NovelService) GetNovel(ctx context.Context, id uint) (*models.Novel, error) {
	novel, err := s.novelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Detail views drive the popularity ranking; failures only skew the
	// counter, so they are not surfaced.
	_ = s.novelRepo.IncrementPopularity(ctx, id)
	return novel, nil
}

func (s *NovelService) ListNovels(ctx context.Context, filter repository.CatalogFilter) ([]*models.Novel, int64, error) {
	if filter.MinChapters < 0 {
		return nil, 0, models.NewValidationError("min_chapters cannot be negative")
	}
	return s.novelRepo.List(ctx, filter)
}

// TagSuggestions returns the cached union of catalog genres and tags.
func (s *NovelService) TagSuggestions(ctx context.Context) ([]string, error) {
	return s.tagCache.Tags(ctx)
}

func (s *NovelService) validateInput(in *SaveNovelInput) error {
	if err := validation.ValidateNovelName(in.Name); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateYear(in.Year); err != nil {
		return models.NewValidationError(err.Error())
	}
	if in.ChapterCount < 0 {
		return models.NewValidationError("chapter_count cannot be negative")
	}
	in.Genres = validation.NormalizeTags(in.Genres)
	in.Tags = validation.NormalizeTags(in.Tags)
	return nil
}

func (s *NovelService) CreateNovel(ctx context.Context, in SaveNovelInput) (*models.Novel, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	novel := &models.Novel{
		Name:             in.Name,
		AltNames:         pq.StringArray(in.AltNames),
		OriginalLanguage: in.OriginalLanguage,
		Authors:          pq.StringArray(in.Authors),
		Genres:           pq.StringArray(in.Genres),
		Tags:             pq.StringArray(in.Tags),
		CoverURL:         in.CoverURL,
		Synopsis:         in.Synopsis,
		Year:             in.Year,
		IsCompleted:      in.IsCompleted,
		IsLicensed:       in.IsLicensed,
		ChapterCount:     in.ChapterCount,
	}
	if err := s.novelRepo.Create(ctx, novel); err != nil {
		return nil, err
	}

	if err := s.tagCache.Refresh(ctx); err != nil {
		return nil, err
	}
	return novel, nil
}

func (s *NovelService) UpdateNovel(ctx context.Context, id uint, in SaveNovelInput) (*models.Novel, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	novel, err := s.novelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	novel.Name = in.Name
	novel.AltNames = pq.StringArray(in.AltNames)
	novel.OriginalLanguage = in.OriginalLanguage
	novel.Authors = pq.StringArray(in.Authors)
	novel.Genres = pq.StringArray(in.Genres)
	novel.Tags = pq.StringArray(in.Tags)
	novel.CoverURL = in.CoverURL
	novel.Synopsis = in.Synopsis
	novel.Year = in.Year
	novel.IsCompleted = in.IsCompleted
	novel.IsLicensed = in.IsLicensed
	novel.ChapterCount = in.ChapterCount

	if err := s.novelRepo.Update(ctx, novel); err != nil {
		return nil, err
	}

	if err := s.tagCache.Refresh(ctx); err != nil {
		return nil, err
	}
	return novel, nil
}

// AddTags merges the given tags into the novel's tag list. Names are
// case-folded and trimmed, so re-adding an existing tag is a no-op.
func (s *NovelService) AddTags(ctx context.Context, id uint, tags []string) (*models.Novel, error) {
	incoming := validation.NormalizeTags(tags)
	if len(incoming) == 0 {
		return nil, models.NewValidationError("At least one tag is required")
	}

	novel, err := s.novelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := validation.NormalizeTags(append([]string(novel.Tags), incoming...))
	novel.Tags = pq.StringArray(merged)

	if err := s.novelRepo.Update(ctx, novel); err != nil {
		return nil, err
	}

	if err := s.tagCache.Refresh(ctx); err != nil {
		return nil, err
	}
	return novel, nil
}

func (s *NovelService) DeleteNovel(ctx context.Context, id uint) error {
	if _, err := s.novelRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.novelRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.tagCache.Invalidate(ctx)
	return nil
}

// Recommendations resolves the novel's curated recommendation IDs to catalog
// entries, skipping any that have since been removed.
func (s *NovelService) Recommendations(ctx context.Context, id uint) ([]*models.Novel, error) {
	novel, err := s.novelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Novel, 0, len(novel.RecommendedIDs))
	for _, recID := range novel.RecommendedIDs {
		rec, err := s.novelRepo.GetByID(ctx, uint(recID))
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
				continue
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
