package server

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ReceiverID     uint   `json:"receiver_id"`
		OfferedSkillID uint   `json:"offered_skill_id"`
		WantedSkillID  uint   `json:"wanted_skill_id"`
		Message        string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 || req.OfferedSkillID == 0 || req.WantedSkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("receiver_id, offered_skill_id and wanted_skill_id are required"))
	}

	swap, err := s.swapService.Create(c.Context(), userID, service.CreateSwapInput{
		ReceiverID:     req.ReceiverID,
		OfferedSkillID: req.OfferedSkillID,
		WantedSkillID:  req.WantedSkillID,
		Message:        req.Message,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetSwaps handles GET /api/swaps listing the caller's swap requests.
func (s *Server) GetSwaps(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pq := parsePageQuery(c, 20)

	swaps, page, err := s.swapService.List(c.Context(), userID, c.Query("status"), pq.Page, pq.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps":      swaps,
		"pagination": page,
	})
}

// GetSwap handles GET /api/swaps/:id
func (s *Server) GetSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Get(c.Context(), userID, swapID, s.actorIsAdmin(c, userID))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Accept)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Reject)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Complete)
}

func (s *Server) transitionSwap(c *fiber.Ctx, transition func(context.Context, uint, uint) (*models.SwapRequest, error)) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := transition(c.Context(), userID, swapID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// DeleteSwap handles DELETE /api/swaps/:id
func (s *Server) DeleteSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.swapService.Delete(c.Context(), userID, swapID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Swap request deleted"})
}
