package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ai-interview/internal/middleware"
	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
	validator        *RequestValidator
}

func NewInterviewHandler(interviewService services.InterviewService, validator *RequestValidator) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		validator:        validator,
	}
}

func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, services.ErrUnauthorized)
	}

	var req models.StartInterviewRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.interviewService.Start(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *InterviewHandler) HandleSubmitResponse(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, services.ErrUnauthorized)
	}

	var req models.SubmitResponseRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.interviewService.SubmitResponse(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

func (h *InterviewHandler) HandleHistory(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, services.ErrUnauthorized)
	}

	interviews, err := h.interviewService.History(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.InterviewHistoryResponse{
		Interviews: interviews,
	})
}

func (h *InterviewHandler) HandleGetInterview(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, services.ErrUnauthorized)
	}

	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.NewError(fiber.StatusBadRequest, "invalid interview ID format"))
	}

	interview, err := h.interviewService.Get(userID, interviewID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(interview)
}
