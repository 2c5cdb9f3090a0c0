package server

import (
	"novelshelf/internal/models"
	"novelshelf/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyList handles GET /api/novel-list?status=
func (s *Server) GetMyList(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 50)

	entries, count, err := s.listService.GetList(c.Context(), service.GetListInput{
		UserID: userID,
		Status: models.ReadingStatus(c.Query("status")),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"data":  entries,
		"count": count,
	})
}

// UpsertListEntry handles POST /api/novel-list. Repeated adds for the same
// novel collapse into one entry.
func (s *Server) UpsertListEntry(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		NovelID        uint                 `json:"novel_id"`
		Status         models.ReadingStatus `json:"status"`
		CurrentChapter int                  `json:"current_chapter"`
		Score          float64              `json:"score"`
		Notes          string               `json:"notes"`
		Favorite       bool                 `json:"favorite"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.listService.SaveEntry(c.Context(), service.SaveListEntryInput{
		UserID:         userID,
		NovelID:        req.NovelID,
		Status:         req.Status,
		CurrentChapter: req.CurrentChapter,
		Score:          req.Score,
		Notes:          req.Notes,
		Favorite:       req.Favorite,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(entry)
}

// GetListEntry handles GET /api/novel-list/:novelId
func (s *Server) GetListEntry(c *fiber.Ctx) error {
	novelID, err := s.parseID(c, "novelId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	entry, err := s.listService.GetEntry(c.Context(), userID, novelID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(entry)
}

// DeleteListEntry handles DELETE /api/novel-list/:novelId
func (s *Server) DeleteListEntry(c *fiber.Ctx) error {
	novelID, err := s.parseID(c, "novelId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.listService.RemoveEntry(c.Context(), userID, novelID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Entry removed"})
}

// GetFavorites handles GET /api/novel-list/favorites
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 50)

	entries, err := s.listService.Favorites(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(entries)
}

// GetListStats handles GET /api/novel-list/stats
func (s *Server) GetListStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	stats, err := s.listService.Stats(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(stats)
}
