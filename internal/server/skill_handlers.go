package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSkills handles GET /api/skills listing directory entries. Without an
// explicit status filter only approved skills are returned.
func (s *Server) GetSkills(c *fiber.Ctx) error {
	pq := parsePageQuery(c, 50)

	status := c.Query("status", string(models.SkillStatusApproved))
	skills, page, err := s.skillService.List(c.Context(), status, c.Query("search"), pq.Page, pq.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"skills":     skills,
		"pagination": page,
	})
}

// SuggestSkill handles POST /api/skills registering a new directory entry.
func (s *Server) SuggestSkill(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.Suggest(c.Context(), req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// ApproveSkill handles POST /api/admin/skills/:id/approve
func (s *Server) ApproveSkill(c *fiber.Ctx) error {
	return s.moderateSkill(c, true)
}

// RejectSkill handles POST /api/admin/skills/:id/reject
func (s *Server) RejectSkill(c *fiber.Ctx) error {
	return s.moderateSkill(c, false)
}

func (s *Server) moderateSkill(c *fiber.Ctx, approve bool) error {
	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skill, err := s.skillService.Moderate(c.Context(), skillID, approve)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(skill)
}
