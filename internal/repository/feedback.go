package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for feedback data operations
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListBySwap(ctx context.Context, swapID uint) ([]models.Feedback, error)
	StatsForUser(ctx context.Context, userID uint) (*models.FeedbackStats, error)
}

// feedbackRepository implements FeedbackRepository
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

const pgUniqueViolation = "23505"

// Create inserts a feedback row. Uniqueness of (swap_id, author_id) is
// enforced by the database index, not a prior existence check, so a lost
// race surfaces here as a constraint violation.
func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	err := r.db.WithContext(ctx).Create(feedback).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewDuplicateFeedbackError()
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return models.NewDuplicateFeedbackError()
	}
	return models.NewInternalError(err)
}

func (r *feedbackRepository) ListBySwap(ctx context.Context, swapID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if err := r.db.WithContext(ctx).
		Where("swap_id = ?", swapID).
		Preload("Author").
		Order("created_at ASC").
		Find(&feedbacks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return feedbacks, nil
}

// StatsForUser aggregates the ratings a user received across all swaps they
// took part in. Rows the user authored themselves are excluded.
func (r *feedbackRepository) StatsForUser(ctx context.Context, userID uint) (*models.FeedbackStats, error) {
	type ratingRow struct {
		Rating int
		Cnt    int
	}

	var rows []ratingRow
	if err := r.db.WithContext(ctx).
		Table("feedbacks").
		Select("feedbacks.rating AS rating, COUNT(*) AS cnt").
		Joins("JOIN swap_requests ON swap_requests.id = feedbacks.swap_id").
		Where("(swap_requests.sender_id = ? OR swap_requests.receiver_id = ?) AND feedbacks.author_id <> ?",
			userID, userID, userID).
		Group("feedbacks.rating").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	stats := &models.FeedbackStats{
		UserID:       userID,
		RatingCounts: make(map[int]int),
	}
	var sum int64
	for _, row := range rows {
		stats.RatingCounts[row.Rating] = row.Cnt
		stats.Count += int64(row.Cnt)
		sum += int64(row.Rating) * int64(row.Cnt)
	}
	if stats.Count > 0 {
		stats.AverageScore = float64(sum) / float64(stats.Count)
	}
	return stats, nil
}
