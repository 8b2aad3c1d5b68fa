package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRegisterWeakPassword(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopSkillRepo())

	_, err := svc.Register(context.Background(), "alice_g", "alice@example.com", "short")
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 1}, nil
	}
	svc := NewUserService(users, noopSkillRepo())

	_, err := svc.Register(context.Background(), "alice_g", "alice@example.com", "SecurePass12!@")
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestUserRegisterHashesPassword(t *testing.T) {
	var created *models.User
	users := noopUserRepo()
	users.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 1
		created = u
		return nil
	}
	svc := NewUserService(users, noopSkillRepo())

	user, err := svc.Register(context.Background(), "alice_g", "alice@example.com", "SecurePass12!@")
	require.NoError(t, err)
	assert.Equal(t, created, user)
	assert.NotEqual(t, "SecurePass12!@", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("SecurePass12!@")))
}

func TestUserAuthenticateWrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!@"), bcrypt.MinCost)
	require.NoError(t, err)

	users := noopUserRepo()
	users.getByEmailFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 1, Password: string(hashed)}, nil
	}
	svc := NewUserService(users, noopSkillRepo())

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "WrongPass12!@")
	assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))

	user, err := svc.Authenticate(context.Background(), "alice@example.com", "SecurePass12!@")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestUserAuthenticateBannedAccount(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!@"), bcrypt.MinCost)
	require.NoError(t, err)

	users := noopUserRepo()
	users.getByEmailFn = func(context.Context, string) (*models.User, error) {
		return &models.User{ID: 1, Password: string(hashed), IsBanned: true}, nil
	}
	svc := NewUserService(users, noopSkillRepo())

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "SecurePass12!@")
	assert.Equal(t, models.CodeActorBanned, models.CodeOf(err))
}

func TestUserAuthenticateUnknownEmail(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopSkillRepo())

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "SecurePass12!@")
	assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))
}

func TestUserGetProfilePrivate(t *testing.T) {
	users := noopUserRepo()
	users.getByIDWithSkillsFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 2, IsPublic: false}, nil
	}
	svc := NewUserService(users, noopSkillRepo())

	_, err := svc.GetProfile(context.Background(), 1, 2, false)
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))

	// The owner and admins can still read it.
	_, err = svc.GetProfile(context.Background(), 2, 2, false)
	assert.NoError(t, err)
	_, err = svc.GetProfile(context.Background(), 1, 2, true)
	assert.NoError(t, err)
}

func TestUserAddOfferedSkillResolvesDirectoryEntry(t *testing.T) {
	var resolved string
	skills := noopSkillRepo()
	skills.resolveOrCreateFn = func(_ context.Context, name string) (*models.Skill, error) {
		resolved = name
		return &models.Skill{ID: 42, Name: name, Status: models.SkillStatusPending}, nil
	}

	var attachedUser, attachedSkill uint
	users := noopUserRepo()
	users.addOfferedSkillFn = func(_ context.Context, userID, skillID uint) error {
		attachedUser, attachedSkill = userID, skillID
		return nil
	}
	svc := NewUserService(users, skills)

	skill, err := svc.AddOfferedSkill(context.Background(), 7, "Spanish Tutoring")
	require.NoError(t, err)
	assert.Equal(t, "spanish tutoring", resolved)
	assert.Equal(t, uint(42), skill.ID)
	assert.Equal(t, uint(7), attachedUser)
	assert.Equal(t, uint(42), attachedSkill)
}

func TestUserSetBanned(t *testing.T) {
	var banned bool
	users := noopUserRepo()
	users.setBannedFn = func(_ context.Context, _ uint, b bool) error {
		banned = b
		return nil
	}
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsBanned: banned}, nil
	}
	svc := NewUserService(users, noopSkillRepo())

	user, err := svc.SetBanned(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, user.IsBanned)
}
