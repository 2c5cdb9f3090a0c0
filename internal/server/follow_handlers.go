package server

import (
	"novelshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:userId/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	user, err := s.followService.ToggleFollow(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	action := "unfollowed"
	if user.Followed {
		action = "followed"
	}
	return c.JSON(fiber.Map{
		"action": action,
		"user":   user,
	})
}

// Unfollow handles DELETE /api/users/:userId/follow. It is idempotent for
// clients that prefer an explicit unfollow over the toggle.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	following, err := s.followService.IsFollowing(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if following {
		if _, err := s.followService.ToggleFollow(c.Context(), userID, targetID); err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// CheckFollow handles GET /api/users/:userId/follow
func (s *Server) CheckFollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	following, err := s.followService.IsFollowing(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"following": following})
}

// GetFollowers handles GET /api/users/:userId/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	users, err := s.followService.Followers(c.Context(), targetID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(users)
}

// GetFollowing handles GET /api/users/:userId/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	users, err := s.followService.Following(c.Context(), targetID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(users)
}
