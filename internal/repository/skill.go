package repository

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines the interface for skill directory operations
type SkillRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	GetByName(ctx context.Context, name string) (*models.Skill, error)
	ResolveOrCreate(ctx context.Context, name string) (*models.Skill, error)
	List(ctx context.Context, status models.SkillStatus, search string, limit, offset int) ([]models.Skill, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.SkillStatus) error
}

// skillRepository implements SkillRepository
type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// NormalizeSkillName lowercases and trims a skill name so the unique index on
// skills.name behaves case-insensitively.
func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).
		Where("name = ?", NormalizeSkillName(name)).
		First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

// ResolveOrCreate returns the directory entry for a skill name, inserting a
// pending entry when the name is unseen. Insert races on the unique name
// index fall back to re-reading the winning row.
func (r *skillRepository) ResolveOrCreate(ctx context.Context, name string) (*models.Skill, error) {
	normalized := NormalizeSkillName(name)
	if normalized == "" {
		return nil, models.NewValidationError("Skill name is required")
	}

	skill := models.Skill{Name: normalized, Status: models.SkillStatusPending}
	err := r.db.WithContext(ctx).
		Where("name = ?", normalized).
		FirstOrCreate(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByName(ctx, normalized)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) List(ctx context.Context, status models.SkillStatus, search string, limit, offset int) ([]models.Skill, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Skill{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+NormalizeSkillName(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var skills []models.Skill
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

func (r *skillRepository) UpdateStatus(ctx context.Context, id uint, status models.SkillStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", id)
	}
	return nil
}
