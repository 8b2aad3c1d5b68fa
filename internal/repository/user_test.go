package repository

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwapPartiesSnapshot(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	guitar := seedSkill(t, db, "guitar", models.SkillStatusApproved)
	juggling := seedSkill(t, db, "juggling", models.SkillStatusPending)
	require.NoError(t, db.Model(alice).Association("OfferedSkills").Append(guitar, juggling))

	spanish := seedSkill(t, db, "spanish", models.SkillStatusApproved)
	require.NoError(t, db.Model(bob).Association("OfferedSkills").Append(spanish))

	sender, receiver, err := repo.GetSwapParties(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, sender)
	require.NotNil(t, receiver)

	// Only approved skills appear in the snapshot.
	require.Len(t, sender.OfferedSkills, 1)
	assert.Equal(t, "guitar", sender.OfferedSkills[0].Name)
	require.Len(t, receiver.OfferedSkills, 1)
	assert.Equal(t, "spanish", receiver.OfferedSkills[0].Name)
}

func TestGetSwapPartiesMissingReceiver(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	alice := seedUser(t, db, "alice")

	sender, receiver, err := repo.GetSwapParties(context.Background(), alice.ID, 9999)
	require.NoError(t, err)
	require.NotNil(t, sender)
	assert.Nil(t, receiver)
}

func TestGetSwapPartiesMissingSender(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	_, _, err := repo.GetSwapParties(context.Background(), 9999, 1)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestGetSwapPartiesSelf(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	alice := seedUser(t, db, "alice")

	sender, receiver, err := repo.GetSwapParties(context.Background(), alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Same(t, sender, receiver)
}

func TestSetBannedUnknownUser(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	err := repo.SetBanned(context.Background(), 9999, true)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestListPublicFiltersBannedAndPrivate(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	private := seedUser(t, db, "bob")
	require.NoError(t, db.Model(private).Update("is_public", false).Error)
	banned := seedUser(t, db, "carol")
	require.NoError(t, db.Model(banned).Update("is_banned", true).Error)

	users, total, err := repo.ListPublic(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestListPublicSkillSearch(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	guitar := seedSkill(t, db, "guitar", models.SkillStatusApproved)
	require.NoError(t, db.Model(alice).Association("OfferedSkills").Append(guitar))

	users, total, err := repo.ListPublic(ctx, "guitar", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestOfferedSkillAssociations(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	guitar := seedSkill(t, db, "guitar", models.SkillStatusApproved)

	require.NoError(t, repo.AddOfferedSkill(ctx, alice.ID, guitar.ID))

	loaded, err := repo.GetByIDWithSkills(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, loaded.OfferedSkills, 1)

	require.NoError(t, repo.RemoveOfferedSkill(ctx, alice.ID, guitar.ID))

	loaded, err = repo.GetByIDWithSkills(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.OfferedSkills)
}

func TestGetByEmailNotFoundReturnsNil(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}
