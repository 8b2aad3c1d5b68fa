// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"skillswap/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// TokenIssuer and TokenAudience are stamped into every issued token and
// enforced during validation.
const (
	TokenIssuer   = "skillswap-api"
	TokenAudience = "skillswap-client"
)

var (
	cfg *config.Config
	rdb *redis.Client
)

// InitMiddleware initializes authentication middleware with the given config
// and Redis client. The client may be nil, in which case logout revocation
// checks are skipped.
func InitMiddleware(c *config.Config, r *redis.Client) {
	cfg = c
	rdb = r
}

// BlacklistKey returns the Redis key that marks a token as revoked.
func BlacklistKey(jti string) string {
	return fmt.Sprintf("token:blacklist:%s", jti)
}

func validateToken(c *fiber.Ctx, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token claims",
		})
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token issuer",
		})
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != TokenAudience {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token audience",
		})
	}

	// User ID travels in the "sub" claim (RFC 7519 subject).
	subStr, ok := claims["sub"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token structure - missing subject",
		})
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID in token",
		})
	}

	// Logout writes the token's jti to a Redis blacklist; a blacklisted
	// token is treated the same as an expired one.
	if jti, ok := claims["jti"].(string); ok && rdb != nil {
		exists, err := rdb.Exists(context.Background(), BlacklistKey(jti)).Result()
		if err == nil && exists > 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has been revoked",
			})
		}
		c.Locals("jti", jti)
	}

	c.Locals("userID", uint(userIDVal))
	// Sync to UserContext so the context-aware logger sees the user.
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, uint(userIDVal)))
	return c.Next()
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	return validateToken(c, parts[1])
}

// WebSocketAuthRequired validates JWT tokens from query parameters for
// WebSocket connections, falling back to the Authorization header.
func WebSocketAuthRequired(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token required",
			})
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}
		token = parts[1]
	}

	return validateToken(c, token)
}
