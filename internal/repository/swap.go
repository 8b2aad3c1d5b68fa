// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines the interface for swap-request data operations
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error)
	UpdateStatusIf(ctx context.Context, id uint, from, to models.SwapStatus) error
	DeleteIfPending(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// swapRepository implements SwapRepository
type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository creates a new swap repository
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var swaps []models.SwapRequest
	if err := query.
		Preload("Sender").
		Preload("Receiver").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return swaps, total, nil
}

// UpdateStatusIf applies a status transition as a single conditional update.
// The write only lands when the row's current status still equals `from`, so
// two concurrent transitions can never both succeed; the loser observes zero
// affected rows and gets an InvalidState error.
func (r *swapRepository) UpdateStatusIf(ctx context.Context, id uint, from, to models.SwapStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewInvalidStateError("Swap request is not in state " + string(from))
	}
	return nil
}

// DeleteIfPending removes a swap request only while it is still pending,
// using the same conditional-write pattern as UpdateStatusIf.
func (r *swapRepository) DeleteIfPending(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.SwapStatusPending).
		Delete(&models.SwapRequest{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewInvalidStateError("Only pending swap requests can be deleted")
	}
	return nil
}

func (r *swapRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}
