package service

import (
	"context"
	"fmt"
	"time"

	"skillswap/internal/authz"
	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

const feedbackStatsTTL = 5 * time.Minute

// FeedbackService provides feedback business logic for completed swaps.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	swapRepo     repository.SwapRepository
	userRepo     repository.UserRepository
	notifier     *notifications.Notifier
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	swapRepo repository.SwapRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		swapRepo:     swapRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func statsCacheKey(userID uint) string {
	return fmt.Sprintf("feedback:stats:%d", userID)
}

// Add records the actor's rating of a completed swap. Uniqueness per
// (swap, author) is enforced by the storage layer, not a prior read.
func (s *FeedbackService) Add(ctx context.Context, actorID, swapID uint, rating int, comment string) (*models.Feedback, error) {
	if err := validation.ValidateRating(rating); err != nil {
		observability.FeedbackSubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, models.NewInvalidRatingError(rating)
	}
	if err := validation.ValidateFeedbackComment(comment); err != nil {
		observability.FeedbackSubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, models.NewValidationError(err.Error())
	}

	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanGiveFeedback(actorID, swap); err != nil {
		observability.FeedbackSubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsBanned {
		observability.FeedbackSubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewActorBannedError()
	}

	feedback := &models.Feedback{
		SwapID:   swapID,
		AuthorID: actorID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		if models.CodeOf(err) == models.CodeDuplicateFeedback {
			observability.FeedbackSubmissionsTotal.WithLabelValues("duplicate").Inc()
		} else {
			observability.FeedbackSubmissionsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	observability.FeedbackSubmissionsTotal.WithLabelValues("ok").Inc()

	// The new rating counts toward the counterpart's aggregate.
	cache.Invalidate(ctx, statsCacheKey(swap.Counterpart(actorID)))

	s.notifier.NotifySwap(ctx, notifications.EventFeedbackGiven, swap)
	return feedback, nil
}

// GetForSwap returns all feedback left on a swap. Only participants and
// admins may read it.
func (s *FeedbackService) GetForSwap(ctx context.Context, actorID, swapID uint, isAdmin bool) ([]models.Feedback, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.Participant(actorID) && !isAdmin {
		return nil, models.NewForbiddenError("Only swap participants can view this swap's feedback")
	}
	return s.feedbackRepo.ListBySwap(ctx, swapID)
}

// StatsForUser returns the aggregate ratings a user has received. Results are
// cached briefly and invalidated whenever new feedback lands.
func (s *FeedbackService) StatsForUser(ctx context.Context, userID uint) (*models.FeedbackStats, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var stats models.FeedbackStats
	err := cache.CacheAside(ctx, statsCacheKey(userID), &stats, feedbackStatsTTL, func() error {
		fresh, err := s.feedbackRepo.StatsForUser(ctx, userID)
		if err != nil {
			return err
		}
		stats = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
