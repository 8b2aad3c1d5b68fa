// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// PageQuery holds parsed page/limit query parameters.
type PageQuery struct {
	Page  int
	Limit int
}

// parsePageQuery extracts page and limit query parameters with the given default limit.
func parsePageQuery(c *fiber.Ctx, defaultLimit int) PageQuery {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	return PageQuery{Page: page, Limit: limit}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "skillId" -> "skill ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// actorIsAdmin resolves the authenticated user's admin flag, defaulting to
// false on any lookup error.
func (s *Server) actorIsAdmin(c *fiber.Ctx, userID uint) bool {
	admin, err := s.isAdminByUserID(c.Context(), userID)
	if err != nil {
		return false
	}
	return admin
}

// RequireFlag gates a route behind a feature flag, evaluated per user so
// percentage rollouts stick to the same accounts.
func (s *Server) RequireFlag(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		if !s.flags.Enabled(name, userID) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("This feature is not enabled for your account"))
		}
		return c.Next()
	}
}

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeForbidden, models.CodeActorBanned, models.CodeNotParticipant:
		return fiber.StatusForbidden
	case models.CodeInvalidState, models.CodeDuplicateFeedback, models.CodeSwapNotCompleted:
		return fiber.StatusConflict
	case models.CodeSelfSwap, models.CodeSkillNotOwned, models.CodeSkillNotOffered,
		models.CodeInvalidRating, models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes the HTTP response for an error coming out of the
// service layer, using the AppError code to pick the status.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForCode(models.CodeOf(err)), err)
}
