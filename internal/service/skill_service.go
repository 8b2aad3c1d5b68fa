package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SkillService provides skill directory business logic.
type SkillService struct {
	skillRepo repository.SkillRepository
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

// GetByID returns a skill directory entry.
func (s *SkillService) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	return s.skillRepo.GetByID(ctx, id)
}

// Suggest resolves a skill name to its directory entry, registering a pending
// entry when the name is new.
func (s *SkillService) Suggest(ctx context.Context, name string) (*models.Skill, error) {
	normalized := repository.NormalizeSkillName(name)
	if err := validation.ValidateSkillName(normalized); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.skillRepo.ResolveOrCreate(ctx, normalized)
}

// List returns directory entries, optionally filtered by status and name search.
func (s *SkillService) List(ctx context.Context, status, search string, page, limit int) ([]models.Skill, *models.PageInfo, error) {
	skillStatus := models.SkillStatus(status)
	switch skillStatus {
	case "", models.SkillStatusPending, models.SkillStatusApproved, models.SkillStatusRejected:
	default:
		return nil, nil, models.NewValidationError("Unknown skill status filter: " + status)
	}

	page, limit = normalizePage(page, limit)
	skills, total, err := s.skillRepo.List(ctx, skillStatus, search, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	return skills, models.NewPageInfo(page, limit, total), nil
}

// Moderate approves or rejects a pending directory entry.
func (s *SkillService) Moderate(ctx context.Context, id uint, approve bool) (*models.Skill, error) {
	status := models.SkillStatusRejected
	if approve {
		status = models.SkillStatusApproved
	}
	if err := s.skillRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.skillRepo.GetByID(ctx, id)
}
