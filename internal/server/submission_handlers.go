package server

import (
	"novelshelf/internal/models"
	"novelshelf/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMySubmissions handles GET /api/submissions/me
func (s *Server) GetMySubmissions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	submissions, err := s.submissionService.MySubmissions(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(submissions)
}

// GetSubmission handles GET /api/submissions/:id. Submitters may view their
// own submissions; admins may view any.
func (s *Server) GetSubmission(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	submission, err := s.submissionService.GetSubmission(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	if submission.SubmittedByUserID != userID {
		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You cannot view this submission"))
		}
	}

	return c.JSON(submission)
}

// GetAdminSubmissions handles GET /api/admin/submissions: the review queue,
// oldest first. ?status= selects pending (default), approved or rejected.
// @Summary      List novel submissions by status
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected (default pending)"
// @Param        limit   query  int  false  "Page size (max 100)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/submissions [get]
func (s *Server) GetAdminSubmissions(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	status := models.NovelSubmissionStatus(c.Query("status"))

	submissions, count, err := s.submissionService.Queue(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"data":  submissions,
		"count": count,
	})
}

// ReviewSubmission handles PUT /api/admin/submissions/:id. The body carries
// the verdict: {"status": "approved"} or {"status": "rejected", "feedback": "..."}.
func (s *Server) ReviewSubmission(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	reviewerID := c.Locals("userID").(uint)

	var req struct {
		Status   string `json:"status"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	input := service.ReviewSubmissionInput{
		SubmissionID: id,
		ReviewerID:   reviewerID,
		Feedback:     req.Feedback,
	}

	switch models.NovelSubmissionStatus(req.Status) {
	case models.NovelSubmissionStatusApproved:
		novel, err := s.submissionService.Approve(c.Context(), input)
		if err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		return c.JSON(fiber.Map{
			"message": "Submission approved",
			"novel":   novel,
		})
	case models.NovelSubmissionStatusRejected:
		if err := s.submissionService.Reject(c.Context(), input); err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		return c.JSON(fiber.Map{"message": "Submission rejected"})
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Status must be 'approved' or 'rejected'"))
	}
}
