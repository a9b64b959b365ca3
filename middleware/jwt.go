package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(secret string, ttl time.Duration, userID uint, name, email string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"userId":  userID,
		"name":    name,
		"email":   email,
		"isAdmin": isAdmin,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JWTMiddleware checks for a valid bearer token and stores userId and
// isAdmin in the request locals.
func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get the token from the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, KindUnauthorized, "Missing or invalid Authorization header")
		}

		// The token should be prefixed with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ErrorResponse(c, fiber.StatusUnauthorized, KindUnauthorized, "Invalid Authorization header format")
		}
		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ErrorResponse(c, fiber.StatusUnauthorized, KindUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, KindUnauthorized, "Invalid token payload")
		}
		userID, ok := claims["userId"].(float64) // JWT numbers decode as float64
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, KindUnauthorized, "Invalid token payload")
		}
		isAdmin, _ := claims["isAdmin"].(bool)

		c.Locals("userId", uint(userID))
		c.Locals("isAdmin", isAdmin)
		return c.Next()
	}
}
