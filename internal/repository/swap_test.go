package repository

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusIfTransitions(t *testing.T) {
	db := testDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	swap := seedSwap(t, db, alice, bob, models.SwapStatusPending)

	require.NoError(t, repo.UpdateStatusIf(ctx, swap.ID, models.SwapStatusPending, models.SwapStatusAccepted))

	reloaded, err := repo.GetByID(ctx, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusAccepted, reloaded.Status)
}

func TestUpdateStatusIfLostRace(t *testing.T) {
	db := testDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	swap := seedSwap(t, db, alice, bob, models.SwapStatusRejected)

	// The row is no longer pending, so the conditional write affects nothing.
	err := repo.UpdateStatusIf(ctx, swap.ID, models.SwapStatusPending, models.SwapStatusAccepted)
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidState, models.CodeOf(err))

	// The loser must not have changed the row.
	reloaded, err := repo.GetByID(ctx, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusRejected, reloaded.Status)
}

func TestDeleteIfPending(t *testing.T) {
	db := testDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	swap := seedSwap(t, db, alice, bob, models.SwapStatusPending)

	require.NoError(t, repo.DeleteIfPending(ctx, swap.ID))

	_, err := repo.GetByID(ctx, swap.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestDeleteIfPendingRefusesAccepted(t *testing.T) {
	db := testDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	swap := seedSwap(t, db, alice, bob, models.SwapStatusAccepted)

	err := repo.DeleteIfPending(ctx, swap.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidState, models.CodeOf(err))

	reloaded, err := repo.GetByID(ctx, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusAccepted, reloaded.Status)
}

func TestListByUserFiltersAndCounts(t *testing.T) {
	db := testDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	pending := seedSwap(t, db, alice, bob, models.SwapStatusPending)
	seedSwap(t, db, bob, alice, models.SwapStatusCompleted)
	seedSwap(t, db, bob, carol, models.SwapStatusPending)

	// Alice sees both sides of her swaps.
	swaps, total, err := repo.ListByUser(ctx, alice.ID, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, swaps, 2)

	// Status filter narrows the listing.
	swaps, total, err = repo.ListByUser(ctx, alice.ID, models.SwapStatusPending, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, swaps, 1)
	assert.Equal(t, pending.ID, swaps[0].ID)

	// Carol is not part of alice's swaps.
	_, total, err = repo.ListByUser(ctx, carol.ID, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetByIDPreloadsRelations(t *testing.T) {
	db := testDB(t)
	repo := NewSwapRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	swap := seedSwap(t, db, alice, bob, models.SwapStatusPending)

	reloaded, err := repo.GetByID(ctx, swap.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Sender)
	require.NotNil(t, reloaded.Receiver)
	require.NotNil(t, reloaded.OfferedSkill)
	require.NotNil(t, reloaded.WantedSkill)
	assert.Equal(t, "alice", reloaded.Sender.Username)
	assert.Equal(t, "bob", reloaded.Receiver.Username)
}
