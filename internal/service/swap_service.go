// Package service contains the business logic layered between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"

	"skillswap/internal/authz"
	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// SwapService provides swap-request lifecycle business logic.
type SwapService struct {
	swapRepo repository.SwapRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// CreateSwapInput carries the fields of a new swap proposal.
type CreateSwapInput struct {
	ReceiverID     uint
	OfferedSkillID uint
	WantedSkillID  uint
	Message        string
}

// NewSwapService returns a new SwapService. The notifier may be nil, in which
// case lifecycle events are not published.
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, notifier *notifications.Notifier) *SwapService {
	return &SwapService{
		swapRepo: swapRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Create proposes a new swap from sender to receiver. Both parties are loaded
// in one transaction so the skill-ownership checks see a single snapshot.
func (s *SwapService) Create(ctx context.Context, senderID uint, in CreateSwapInput) (*models.SwapRequest, error) {
	if err := validation.ValidateSwapMessage(in.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	sender, receiver, err := s.userRepo.GetSwapParties(ctx, senderID, in.ReceiverID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanCreate(sender, receiver, in.OfferedSkillID, in.WantedSkillID); err != nil {
		return nil, err
	}

	swap := &models.SwapRequest{
		SenderID:       senderID,
		ReceiverID:     in.ReceiverID,
		OfferedSkillID: in.OfferedSkillID,
		WantedSkillID:  in.WantedSkillID,
		Message:        in.Message,
		Status:         models.SwapStatusPending,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}
	observability.SwapTransitionsTotal.WithLabelValues("create").Inc()

	created, err := s.swapRepo.GetByID(ctx, swap.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifySwap(ctx, notifications.EventSwapCreated, created)
	return created, nil
}

// Get returns a swap request. Only participants and admins may read it.
func (s *SwapService) Get(ctx context.Context, actorID uint, swapID uint, isAdmin bool) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.Participant(actorID) && !isAdmin {
		return nil, models.NewForbiddenError("Only swap participants can view this swap request")
	}
	return swap, nil
}

// List returns the actor's swap requests, optionally filtered by status.
func (s *SwapService) List(ctx context.Context, actorID uint, status string, page, limit int) ([]models.SwapRequest, *models.PageInfo, error) {
	swapStatus := models.SwapStatus(status)
	switch swapStatus {
	case "", models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusRejected, models.SwapStatusCompleted:
	default:
		return nil, nil, models.NewValidationError("Unknown swap status filter: " + status)
	}

	page, limit = normalizePage(page, limit)
	swaps, total, err := s.swapRepo.ListByUser(ctx, actorID, swapStatus, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	return swaps, models.NewPageInfo(page, limit, total), nil
}

// Accept moves a pending swap to accepted. Only the receiver may accept.
func (s *SwapService) Accept(ctx context.Context, actorID, swapID uint) (*models.SwapRequest, error) {
	return s.transition(ctx, actorID, swapID, "accept",
		models.SwapStatusPending, models.SwapStatusAccepted,
		authz.CanAccept, notifications.EventSwapAccepted)
}

// Reject moves a pending swap to rejected. Only the receiver may reject.
func (s *SwapService) Reject(ctx context.Context, actorID, swapID uint) (*models.SwapRequest, error) {
	return s.transition(ctx, actorID, swapID, "reject",
		models.SwapStatusPending, models.SwapStatusRejected,
		authz.CanReject, notifications.EventSwapRejected)
}

// Complete moves an accepted swap to completed. Either participant may do so;
// a single confirmation is sufficient.
func (s *SwapService) Complete(ctx context.Context, actorID, swapID uint) (*models.SwapRequest, error) {
	return s.transition(ctx, actorID, swapID, "complete",
		models.SwapStatusAccepted, models.SwapStatusCompleted,
		authz.CanComplete, notifications.EventSwapCompleted)
}

// transition runs the shared guard-then-conditional-update sequence. The
// authorization check runs against a snapshot, but the state check is the
// conditional write itself, so a lost race surfaces as InvalidState rather
// than a double transition.
func (s *SwapService) transition(
	ctx context.Context,
	actorID, swapID uint,
	action string,
	from, to models.SwapStatus,
	guard func(uint, *models.SwapRequest) error,
	event string,
) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if err := guard(actorID, swap); err != nil {
		return nil, err
	}

	if err := s.swapRepo.UpdateStatusIf(ctx, swapID, from, to); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeInvalidState {
			observability.SwapTransitionConflicts.WithLabelValues(action).Inc()
		}
		return nil, err
	}
	observability.SwapTransitionsTotal.WithLabelValues(action).Inc()

	updated, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifySwap(ctx, event, updated)
	return updated, nil
}

// Delete removes a pending swap request. Only the sender may delete, and the
// storage-level pending check makes the removal race-safe.
func (s *SwapService) Delete(ctx context.Context, actorID, swapID uint) error {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}

	if err := authz.CanDelete(actorID, swap); err != nil {
		return err
	}

	if err := s.swapRepo.DeleteIfPending(ctx, swapID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeInvalidState {
			observability.SwapTransitionConflicts.WithLabelValues("delete").Inc()
		}
		return err
	}
	observability.SwapTransitionsTotal.WithLabelValues("delete").Inc()

	s.notifier.NotifySwap(ctx, notifications.EventSwapDeleted, swap)
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
