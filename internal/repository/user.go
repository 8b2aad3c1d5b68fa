package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDWithSkills(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ListPublic(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error)
	SetBanned(ctx context.Context, id uint, banned bool) error
	AddOfferedSkill(ctx context.Context, userID, skillID uint) error
	RemoveOfferedSkill(ctx context.Context, userID, skillID uint) error
	AddWantedSkill(ctx context.Context, userID, skillID uint) error
	RemoveWantedSkill(ctx context.Context, userID, skillID uint) error
	GetSwapParties(ctx context.Context, senderID, receiverID uint) (*models.User, *models.User, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByIDWithSkills(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("OfferedSkills").
		Preload("WantedSkills").
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil for not found, not an error
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) ListPublic(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_public = ? AND is_banned = ?", true, false)
	if search != "" {
		query = query.
			Joins("JOIN user_offered_skills uos ON uos.user_id = users.id").
			Joins("JOIN skills ON skills.id = uos.skill_id").
			Where("skills.status = ? AND skills.name LIKE ?", models.SkillStatusApproved, "%"+search+"%").
			Distinct("users.*")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := query.
		Preload("OfferedSkills", "status = ?", models.SkillStatusApproved).
		Preload("WantedSkills", "status = ?", models.SkillStatusApproved).
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *userRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_banned", banned)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) AddOfferedSkill(ctx context.Context, userID, skillID uint) error {
	return r.appendSkill(ctx, userID, skillID, "OfferedSkills")
}

func (r *userRepository) RemoveOfferedSkill(ctx context.Context, userID, skillID uint) error {
	return r.removeSkill(ctx, userID, skillID, "OfferedSkills")
}

func (r *userRepository) AddWantedSkill(ctx context.Context, userID, skillID uint) error {
	return r.appendSkill(ctx, userID, skillID, "WantedSkills")
}

func (r *userRepository) RemoveWantedSkill(ctx context.Context, userID, skillID uint) error {
	return r.removeSkill(ctx, userID, skillID, "WantedSkills")
}

func (r *userRepository) appendSkill(ctx context.Context, userID, skillID uint, association string) error {
	user := models.User{ID: userID}
	if err := r.db.WithContext(ctx).
		Model(&user).
		Association(association).
		Append(&models.Skill{ID: skillID}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) removeSkill(ctx context.Context, userID, skillID uint, association string) error {
	user := models.User{ID: userID}
	if err := r.db.WithContext(ctx).
		Model(&user).
		Association(association).
		Delete(&models.Skill{ID: skillID}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetSwapParties loads the sender and receiver of a prospective swap inside a
// single transaction, each with only their approved offered skills attached.
// Both ownership checks at creation time therefore read the same snapshot.
// A missing receiver is reported as a nil receiver, not an error.
func (r *userRepository) GetSwapParties(ctx context.Context, senderID, receiverID uint) (*models.User, *models.User, error) {
	var sender, receiver *models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.User
		if err := tx.Preload("OfferedSkills", "status = ?", models.SkillStatusApproved).
			First(&s, senderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", senderID)
			}
			return err
		}
		sender = &s

		if receiverID == senderID {
			receiver = sender
			return nil
		}

		var rcv models.User
		if err := tx.Preload("OfferedSkills", "status = ?", models.SkillStatusApproved).
			First(&rcv, receiverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // guard reports the missing receiver
			}
			return err
		}
		receiver = &rcv
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, nil, appErr
		}
		return nil, nil, models.NewInternalError(err)
	}
	return sender, receiver, nil
}
