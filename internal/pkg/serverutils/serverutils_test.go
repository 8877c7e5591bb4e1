package serverutils

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", UserID(ctx)+"|"+Token(ctx)))
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newApp()
	token := signed(t, jwt.MapClaims{"user_id": "u-42"})

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
		body   string
	}{
		{"header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, 200, "u-42|" + token},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=" + token }, 200, "u-42|" + token},
		{"missing", func(r *http.Request) {}, 401, "Missing token"},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, 401, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)

			res, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(res.Body)

			assert.Equal(t, tt.status, res.StatusCode)
			assert.Contains(t, string(body), tt.body)
		})
	}
}

func TestJwtMiddlewareNumericUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"user_id": float64(7)}))

	res, err := newApp().Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"data":"7|`)
}

type sample struct {
	Text string `json:"text" validate:"required"`
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/conflict", func(*fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "busy") })
	app.Get("/invalid", func(*fiber.Ctx) error { return ValidateRequest(sample{}) })
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/conflict", 409, `"message":"busy"`},
		{"/invalid", 400, `"Text":"required"`},
		{"/boom", 500, `"message":"boom"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			body, _ := io.ReadAll(res.Body)
			assert.Equal(t, tt.status, res.StatusCode)
			assert.Contains(t, string(body), tt.body)
		})
	}
}

func TestValidateRequestPasses(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Text: "hi"}))
}
