package server

import (
	"strings"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
	"novelshelf/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNovels handles GET /api/novels
// @Summary Browse the novel catalog
// @Description Filter, search and sort the catalog; returns the page plus the total match count
// @Tags novels
// @Produce json
// @Param sort query string false "popularity|recency|rating|name"
// @Param status query string false "any|completed|ongoing"
// @Param genre query string false "Genre filter"
// @Param search query string false "Name/alt-name search"
// @Param origin query string false "Original language"
// @Param min_chapters query int false "Minimum chapter count"
// @Success 200 {object} object{data=[]models.Novel,count=int}
// @Router /novels [get]
func (s *Server) GetNovels(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	status := c.Query("status")
	if status == "any" {
		status = ""
	}
	minChapters := c.QueryInt("min_chapters", 0)
	if minChapters < 0 {
		minChapters = 0
	}

	novels, count, err := s.novelService.ListNovels(c.Context(), repository.CatalogFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		Genre:       c.Query("genre"),
		Tag:         c.Query("tag"),
		Status:      status,
		Origin:      c.Query("origin"),
		MinChapters: minChapters,
		Sort:        c.Query("sort"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"data":  novels,
		"count": count,
	})
}

// GetNovel handles GET /api/novels/:id
func (s *Server) GetNovel(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	novel, err := s.novelService.GetNovel(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(novel)
}

// GetTagSuggestions handles GET /api/novels/tags/suggestions
func (s *Server) GetTagSuggestions(c *fiber.Ctx) error {
	tags, err := s.novelService.TagSuggestions(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"tags": tags})
}

// GetNovelRecommendations handles GET /api/novels/:id/recommendations
func (s *Server) GetNovelRecommendations(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	novels, err := s.novelService.Recommendations(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(novels)
}

type saveNovelRequest struct {
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

// CreateNovel handles POST /api/novels. Admins create catalog entries
// directly; everyone else files a submission for review.
func (s *Server) CreateNovel(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req saveNovelRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	admin, err := s.isAdminByUserID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if admin {
		novel, err := s.novelService.CreateNovel(c.Context(), service.SaveNovelInput{
			Name:             req.Name,
			AltNames:         req.AltNames,
			OriginalLanguage: req.OriginalLanguage,
			Authors:          req.Authors,
			Genres:           req.Genres,
			Tags:             req.Tags,
			CoverURL:         req.CoverURL,
			Synopsis:         req.Synopsis,
			Year:             req.Year,
			IsCompleted:      req.IsCompleted,
			IsLicensed:       req.IsLicensed,
			ChapterCount:     req.ChapterCount,
		})
		if err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		return c.Status(fiber.StatusCreated).JSON(novel)
	}

	submission, err := s.submissionService.Submit(c.Context(), service.SubmitNovelInput{
		UserID:           userID,
		Name:             req.Name,
		AltNames:         req.AltNames,
		OriginalLanguage: req.OriginalLanguage,
		Authors:          req.Authors,
		Genres:           req.Genres,
		CoverURL:         req.CoverURL,
		Synopsis:         req.Synopsis,
		Year:             req.Year,
		IsCompleted:      req.IsCompleted,
		ChapterCount:     req.ChapterCount,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(submission)
}

// UpdateNovel handles PUT /api/novels/:id (admin only)
func (s *Server) UpdateNovel(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req saveNovelRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	novel, err := s.novelService.UpdateNovel(c.Context(), id, service.SaveNovelInput{
		Name:             req.Name,
		AltNames:         req.AltNames,
		OriginalLanguage: req.OriginalLanguage,
		Authors:          req.Authors,
		Genres:           req.Genres,
		Tags:             req.Tags,
		CoverURL:         req.CoverURL,
		Synopsis:         req.Synopsis,
		Year:             req.Year,
		IsCompleted:      req.IsCompleted,
		IsLicensed:       req.IsLicensed,
		ChapterCount:     req.ChapterCount,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(novel)
}

// DeleteNovel handles DELETE /api/novels/:id (admin only)
func (s *Server) DeleteNovel(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.novelService.DeleteNovel(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Novel deleted"})
}

// AddNovelTags handles POST /api/novels/:id/tags
func (s *Server) AddNovelTags(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Tags []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	novel, err := s.novelService.AddTags(c.Context(), id, req.Tags)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(novel)
}
