package server

import (
	"novelshelf/internal/models"
	"novelshelf/internal/service"

	"github.com/gofiber/fiber/v2"
)

type saveReviewRequest struct {
	NovelID    uint    `json:"novel_id"`
	Plot       float64 `json:"plot"`
	Characters float64 `json:"characters"`
	World      float64 `json:"world"`
	Grammar    float64 `json:"grammar"`
	Content    string  `json:"content"`
}

// CreateReview handles POST /api/reviews
// @Summary Create a review
// @Description One review per user per novel; overall is the mean of the four category ratings
// @Tags reviews
// @Accept json
// @Produce json
// @Success 201 {object} models.Review
// @Failure 400 {object} object{error=string}
// @Router /reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req saveReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), service.SaveReviewInput{
		UserID:     userID,
		NovelID:    req.NovelID,
		Plot:       req.Plot,
		Characters: req.Characters,
		World:      req.World,
		Grammar:    req.Grammar,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// UpdateReview handles PUT /api/reviews/:id (owner only)
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req saveReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.UpdateReview(c.Context(), id, service.SaveReviewInput{
		UserID:     userID,
		Plot:       req.Plot,
		Characters: req.Characters,
		World:      req.World,
		Grammar:    req.Grammar,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id (owner or admin)
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.reviewService.DeleteReview(c.Context(), userID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Review deleted"})
}

// GetReview handles GET /api/reviews/:id
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	review, err := s.reviewService.GetReview(c.Context(), id, currentUserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(review)
}

// GetNovelReviews handles GET /api/novels/:id/reviews
func (s *Server) GetNovelReviews(c *fiber.Ctx) error {
	novelID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)
	page := parsePagination(c, 20)

	reviews, count, err := s.reviewService.NovelReviews(c.Context(), service.ListReviewsInput{
		NovelID:       novelID,
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: currentUserID,
		Sort:          c.Query("sort"),
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"data":  reviews,
		"count": count,
	})
}

// GetUserReviews handles GET /api/users/:userId/reviews
func (s *Server) GetUserReviews(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)
	page := parsePagination(c, 20)

	reviews, err := s.reviewService.UserReviews(c.Context(), userID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(reviews)
}

// ToggleReviewLike handles POST /api/reviews/:id/like
func (s *Server) ToggleReviewLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	review, err := s.reviewService.ToggleLike(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	action := "unliked"
	if review.Liked {
		action = "liked"
	}
	return c.JSON(fiber.Map{
		"action":      action,
		"likes_count": review.LikesCount,
		"review":      review,
	})
}

// CheckReviewLike handles GET /api/reviews/:id/like/check
func (s *Server) CheckReviewLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	review, err := s.reviewService.GetReview(c.Context(), id, userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"liked":       review.Liked,
		"likes_count": review.LikesCount,
	})
}
