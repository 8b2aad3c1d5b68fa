package server

import (
	"context"
	"strconv"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID, userID, false)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Bio          string `json:"bio"`
		PhotoURL     string `json:"photo_url"`
		Location     string `json:"location"`
		Availability string `json:"availability"`
		IsPublic     *bool  `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:       userID,
		Bio:          req.Bio,
		PhotoURL:     req.PhotoURL,
		Location:     req.Location,
		Availability: req.Availability,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUsers handles GET /api/users browsing public profiles, optionally
// filtered by an approved skill they offer (?skill=guitar).
func (s *Server) GetUsers(c *fiber.Ctx) error {
	pq := parsePageQuery(c, 20)

	users, page, err := s.userService.ListPublic(c.Context(), c.Query("skill"), pq.Page, pq.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	profiles := make([]models.User, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].PublicProfile())
	}

	return c.JSON(fiber.Map{
		"users":      profiles,
		"pagination": page,
	})
}

// GetUserProfile handles GET /api/users/:id. The route is public; a valid
// bearer token only widens access to the caller's own private profile.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actorID, authed := s.optionalUserID(c)
	isAdmin := false
	if authed {
		isAdmin = s.actorIsAdmin(c, actorID)
	}

	user, err := s.userService.GetProfile(c.Context(), actorID, targetID, isAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}

	if actorID == targetID || isAdmin {
		return c.JSON(user)
	}
	return c.JSON(user.PublicProfile())
}

// AddOfferedSkill handles POST /api/users/me/offered-skills
func (s *Server) AddOfferedSkill(c *fiber.Ctx) error {
	return s.addSkillToSet(c, s.userService.AddOfferedSkill)
}

// AddWantedSkill handles POST /api/users/me/wanted-skills
func (s *Server) AddWantedSkill(c *fiber.Ctx) error {
	return s.addSkillToSet(c, s.userService.AddWantedSkill)
}

func (s *Server) addSkillToSet(c *fiber.Ctx, add func(context.Context, uint, string) (*models.Skill, error)) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := add(c.Context(), userID, req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// RemoveOfferedSkill handles DELETE /api/users/me/offered-skills/:skillId
func (s *Server) RemoveOfferedSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveOfferedSkill(c.Context(), userID, skillID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill removed"})
}

// RemoveWantedSkill handles DELETE /api/users/me/wanted-skills/:skillId
func (s *Server) RemoveWantedSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveWantedSkill(c.Context(), userID, skillID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill removed"})
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, true)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, false)
}

func (s *Server) setUserBanned(c *fiber.Ctx, banned bool) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetBanned(c.Context(), targetID, banned)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}
