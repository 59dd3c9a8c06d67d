package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	validator   *RequestValidator
}

func NewAuthHandler(authService services.AuthService, validator *RequestValidator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}
