package repository

import (
	"context"
	"errors"
	"strings"

	"novelshelf/internal/cache"
	"novelshelf/internal/models"
	"novelshelf/internal/observability"

	"gorm.io/gorm"
)

// CatalogFilter carries the browse/search parameters for the novel catalog.
// Zero values mean "no constraint".
type CatalogFilter struct {
	Search      string
	Genre       string
	Tag         string
	Status      string // "completed" | "ongoing"
	Origin      string // original language
	MinChapters int
	Sort        string // "rating" | "popularity" | "chapters" | "name" | "newest"
	Limit       int
	Offset      int
}

// NovelRepository defines the interface for catalog data operations
type NovelRepository interface {
	Create(ctx context.Context, novel *models.Novel) error
	GetByID(ctx context.Context, id uint) (*models.Novel, error)
	List(ctx context.Context, filter CatalogFilter) ([]*models.Novel, int64, error)
	Update(ctx context.Context, novel *models.Novel) error
	Delete(ctx context.Context, id uint) error
	IncrementPopularity(ctx context.Context, id uint) error
	DistinctTags(ctx context.Context) ([]string, error)
}

type novelRepository struct {
	db *gorm.DB
}

// NewNovelRepository creates a new novel repository
func NewNovelRepository(db *gorm.DB) NovelRepository {
	return &novelRepository{db: db}
}

func (r *novelRepository) Create(ctx context.Context, novel *models.Novel) error {
	// ID comes from the table sequence; callers must not pre-assign it.
	novel.ID = 0
	if err := r.db.WithContext(ctx).Create(novel).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *novelRepository) GetByID(ctx context.Context, id uint) (*models.Novel, error) {
	var novel models.Novel
	key := cache.NovelKey(id)

	err := cache.Aside(ctx, key, &novel, cache.NovelTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).First(&novel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Novel", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &novel, nil
}

// applyFilter appends the WHERE clauses for the requested catalog filter.
func (r *novelRepository) applyFilter(db *gorm.DB, filter CatalogFilter) *gorm.DB {
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + q + "%"
		// Alt names are checked with an unnested subquery so partial matches work
		db = db.Where(
			"name ILIKE ? OR EXISTS (SELECT 1 FROM unnest(alt_names) AS alt WHERE alt ILIKE ?)",
			like, like,
		)
	}
	if filter.Genre != "" {
		db = db.Where("? = ANY(genres)", filter.Genre)
	}
	if filter.Tag != "" {
		db = db.Where("? = ANY(tags)", filter.Tag)
	}
	switch filter.Status {
	case "completed":
		db = db.Where("is_completed = ?", true)
	case "ongoing":
		db = db.Where("is_completed = ?", false)
	}
	if filter.Origin != "" {
		db = db.Where("original_language = ?", filter.Origin)
	}
	if filter.MinChapters > 0 {
		db = db.Where("chapter_count >= ?", filter.MinChapters)
	}
	return db
}

// applySort appends the ORDER BY clause for the requested sort type.
func (r *novelRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "rating":
		return db.Order("rating DESC, rating_votes DESC")
	case "chapters":
		return db.Order("chapter_count DESC, name ASC")
	case "name":
		return db.Order("name ASC")
	case "recency", "newest":
		return db.Order("created_at DESC")
	default: // "popularity" and anything unrecognized
		return db.Order("popularity DESC, rating DESC")
	}
}

// List returns the filtered catalog page plus the total match count, so
// clients can paginate without a second request.
func (r *novelRepository) List(ctx context.Context, filter CatalogFilter) ([]*models.Novel, int64, error) {
	observability.CatalogQueries.WithLabelValues(sortLabel(filter.Sort)).Inc()

	// Session makes the filtered query reusable for both Count and Find
	base := r.applyFilter(readDB(r.db).WithContext(ctx).Model(&models.Novel{}), filter).
		Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var novels []*models.Novel
	if err := r.applySort(base, filter.Sort).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&novels).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return novels, count, nil
}

func sortLabel(sort string) string {
	switch sort {
	case "rating", "chapters", "name", "recency", "newest":
		return sort
	default:
		return "popularity"
	}
}

func (r *novelRepository) Update(ctx context.Context, novel *models.Novel) error {
	if err := r.db.WithContext(ctx).Save(novel).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateNovel(ctx, novel.ID)
	return nil
}

func (r *novelRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Novel{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateNovel(ctx, id)
	return nil
}

func (r *novelRepository) IncrementPopularity(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Novel{}).
		Where("id = ?", id).
		UpdateColumn("popularity", gorm.Expr("popularity + 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DistinctTags returns the union of every genre and tag in the catalog.
func (r *novelRepository) DistinctTags(ctx context.Context) ([]string, error) {
	var tags []string
	err := readDB(r.db).WithContext(ctx).Raw(
		`SELECT DISTINCT t FROM (
			SELECT unnest(genres) AS t FROM novels
			UNION
			SELECT unnest(tags) AS t FROM novels
		) AS all_tags WHERE t <> '' ORDER BY t`,
	).Scan(&tags).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
