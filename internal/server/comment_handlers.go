package server

import (
	"novelshelf/internal/models"
	"novelshelf/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReviewComment handles POST /api/reviews/:id/comments
func (s *Server) CreateReviewComment(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.createComment(c, &reviewID, nil)
}

// CreatePostComment handles POST /api/posts/:id/comments
func (s *Server) CreatePostComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.createComment(c, nil, &postID)
}

func (s *Server) createComment(c *fiber.Ctx, reviewID, postID *uint) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:   userID,
		ReviewID: reviewID,
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetReviewComments handles GET /api/reviews/:id/comments
func (s *Server) GetReviewComments(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)
	page := parsePagination(c, 50)

	comments, err := s.commentService.ReviewComments(c.Context(), reviewID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comments)
}

// GetPostComments handles GET /api/posts/:id/comments
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)
	page := parsePagination(c, 50)

	comments, err := s.commentService.PostComments(c.Context(), postID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comments)
}

// GetCommentReplies handles GET /api/comments/:id/replies
func (s *Server) GetCommentReplies(c *fiber.Ctx) error {
	parentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)
	page := parsePagination(c, 50)

	replies, err := s.commentService.Replies(c.Context(), parentID, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(replies)
}

// UpdateComment handles PUT /api/comments/:id (owner only)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), userID, id, req.Content)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id (owner or admin)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.commentService.DeleteComment(c.Context(), userID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// ToggleCommentLike handles POST /api/comments/:id/like
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	comment, err := s.commentService.ToggleLike(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	action := "unliked"
	if comment.Liked {
		action = "liked"
	}
	return c.JSON(fiber.Map{
		"action":      action,
		"likes_count": comment.LikesCount,
		"comment":     comment,
	})
}
