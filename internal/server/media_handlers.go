package server

import (
	"io"
	"net/http"

	"novelshelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadBanner handles POST /api/upload-banner. The multipart field "image"
// carries the file; the optional "kind" query ("banner", "avatar" or
// "cover") defaults to banner.
// @Summary      Upload an image
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image file (max 5 MiB)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/upload-banner [post]
func (s *Server) UploadBanner(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing 'image' file"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	// Sniff the real content type rather than trusting the client header.
	contentType := http.DetectContentType(data)

	kind := c.Query("kind", "banner")

	url, err := s.mediaService.UploadImage(c.Context(), kind, contentType, data)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"url": url})
}
