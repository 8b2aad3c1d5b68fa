package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

// UpdateProfileInput carries the mutable profile fields. Empty strings leave
// the corresponding field untouched.
type UpdateProfileInput struct {
	UserID       uint
	Bio          string
	PhotoURL     string
	Location     string
	Availability string
	IsPublic     *bool
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, skillRepo repository.SkillRepository) *UserService {
	return &UserService{userRepo: userRepo, skillRepo: skillRepo}
}

// Register creates a new account after validating credentials and uniqueness.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		IsPublic: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account on success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	// Banned accounts keep their credentials but cannot obtain new sessions.
	if user.IsBanned {
		return nil, models.NewActorBannedError()
	}
	return user, nil
}

// GetProfile returns a user's profile with their skill sets. Private profiles
// are visible only to the owner and admins.
func (s *UserService) GetProfile(ctx context.Context, actorID, targetID uint, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithSkills(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !user.IsPublic && actorID != targetID && !isAdmin {
		return nil, models.NewForbiddenError("This profile is private")
	}
	return user, nil
}

// UpdateProfile applies the provided profile changes.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.PhotoURL != "" {
		user.PhotoURL = in.PhotoURL
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.Availability != "" {
		user.Availability = in.Availability
	}
	if in.IsPublic != nil {
		user.IsPublic = *in.IsPublic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListPublic returns public, non-banned users, optionally filtered by an
// approved skill they offer.
func (s *UserService) ListPublic(ctx context.Context, search string, page, limit int) ([]models.User, *models.PageInfo, error) {
	page, limit = normalizePage(page, limit)
	users, total, err := s.userRepo.ListPublic(ctx, repository.NormalizeSkillName(search), limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	return users, models.NewPageInfo(page, limit, total), nil
}

// AddOfferedSkill attaches a skill, by name, to the user's offered set. New
// names enter the directory as pending and do not count for swaps until
// approved.
func (s *UserService) AddOfferedSkill(ctx context.Context, userID uint, skillName string) (*models.Skill, error) {
	return s.addSkill(ctx, userID, skillName, s.userRepo.AddOfferedSkill)
}

// AddWantedSkill attaches a skill, by name, to the user's wanted set.
func (s *UserService) AddWantedSkill(ctx context.Context, userID uint, skillName string) (*models.Skill, error) {
	return s.addSkill(ctx, userID, skillName, s.userRepo.AddWantedSkill)
}

func (s *UserService) addSkill(ctx context.Context, userID uint, skillName string, attach func(context.Context, uint, uint) error) (*models.Skill, error) {
	normalized := repository.NormalizeSkillName(skillName)
	if err := validation.ValidateSkillName(normalized); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	skill, err := s.skillRepo.ResolveOrCreate(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, userID, skill.ID); err != nil {
		return nil, err
	}
	return skill, nil
}

// RemoveOfferedSkill detaches a skill from the user's offered set.
func (s *UserService) RemoveOfferedSkill(ctx context.Context, userID, skillID uint) error {
	return s.userRepo.RemoveOfferedSkill(ctx, userID, skillID)
}

// RemoveWantedSkill detaches a skill from the user's wanted set.
func (s *UserService) RemoveWantedSkill(ctx context.Context, userID, skillID uint) error {
	return s.userRepo.RemoveWantedSkill(ctx, userID, skillID)
}

// SetBanned bans or unbans an account. Existing swaps are untouched; the ban
// only blocks new activity.
func (s *UserService) SetBanned(ctx context.Context, targetID uint, banned bool) (*models.User, error) {
	if err := s.userRepo.SetBanned(ctx, targetID, banned); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, targetID)
}
