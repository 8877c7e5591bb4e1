package serverutils

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalUserID = "user_id"
	LocalToken  = "token"
)

// JwtMiddleware verifies the bearer token against JWT_SECRET and stores the
// user id and the raw token so downstream calls can reuse the session.
func JwtMiddleware(ctx *fiber.Ctx) error {
	tokenStr := bearerToken(ctx)
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
	}

	userID := claims["user_id"]
	if userID == nil {
		userID = claims["sub"]
	}
	if userID == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
	}

	ctx.Locals(LocalUserID, fmt.Sprint(userID))
	ctx.Locals(LocalToken, tokenStr)
	return ctx.Next()
}

// bearerToken reads the Authorization header, then the "token" query
// parameter browsers use for WebSocket handshakes.
func bearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ctx.Query("token")
}

// UserID returns the authenticated user id set by JwtMiddleware.
func UserID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(LocalUserID).(string)
	return id
}

func Token(ctx *fiber.Ctx) string {
	token, _ := ctx.Locals(LocalToken).(string)
	return token
}
