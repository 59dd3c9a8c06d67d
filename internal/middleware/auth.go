package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/services"
)

const userIDKey = "user_id"

// JWTProtected rejects requests without a valid bearer token and stores the
// caller's identity for UserID.
func JWTProtected(tokens *services.TokenManager) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    tokens.Secret(),
		},
		ErrorHandler: unauthorized,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok || token == nil {
				return unauthorized(c, services.ErrUnauthorized)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, services.ErrUnauthorized)
			}

			userID, err := tokens.UserIDFromClaims(claims)
			if err != nil {
				return unauthorized(c, err)
			}

			c.Locals(userIDKey, userID)
			return c.Next()
		},
	})
}

// UserID returns the identity stored by JWTProtected.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals(userIDKey).(uuid.UUID)
	return userID, ok
}

func unauthorized(c *fiber.Ctx, _ error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
		Error: "Unauthorized: invalid or expired token",
		Code:  fiber.StatusUnauthorized,
	})
}
