package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-interview/internal/services"
)

func newProtectedApp(tokens *services.TokenManager) *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTProtected(tokens), func(c *fiber.Ctx) error {
		userID, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(userID.String())
	})
	return app
}

func request(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestJWTProtectedAcceptsIssuedToken(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	app := newProtectedApp(tokens)
	userID := uuid.New()

	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	status, body := request(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, userID.String(), body)
}

func TestJWTProtectedRejectsBadTokens(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	app := newProtectedApp(tokens)

	foreign, err := services.NewTokenManager("other", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":     "",
		"garbage":     "Bearer garbage",
		"foreign":     "Bearer " + foreign,
		"no expiry":   "Bearer " + noExpiry,
		"bad subject": "Bearer " + badSubject,
	} {
		t.Run(name, func(t *testing.T) {
			status, _ := request(t, app, header)
			assert.Equal(t, fiber.StatusUnauthorized, status)
		})
	}
}
