package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddFeedback handles POST /api/swaps/:id/feedback
func (s *Server) AddFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	feedback, err := s.feedbackService.Add(c.Context(), userID, swapID, req.Rating, req.Comment)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// GetSwapFeedback handles GET /api/swaps/:id/feedback
func (s *Server) GetSwapFeedback(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	feedback, err := s.feedbackService.GetForSwap(c.Context(), userID, swapID, s.actorIsAdmin(c, userID))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"feedback": feedback})
}

// GetUserFeedbackStats handles GET /api/users/:id/feedback-stats
func (s *Server) GetUserFeedbackStats(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.feedbackService.StatsForUser(c.Context(), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}
