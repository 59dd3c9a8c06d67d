package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-interview/internal/middleware"
	"alfredoptarigan/ai-interview/internal/services"
)

const resumeFormField = "file"

type UploadHandler struct {
	resumeService services.ResumeService
}

func NewUploadHandler(resumeService services.ResumeService) *UploadHandler {
	return &UploadHandler{
		resumeService: resumeService,
	}
}

func (h *UploadHandler) HandleUploadResume(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, services.ErrUnauthorized)
	}

	fileHeader, err := c.FormFile(resumeFormField)
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "missing 'file' upload"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file"))
	}
	defer file.Close()

	resp, err := h.resumeService.Upload(userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
