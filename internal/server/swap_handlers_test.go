package server

import (
	"net/http"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapLifecycleEndToEnd(t *testing.T) {
	s, app := newTestServer(t)

	alice := createTestUser(t, s, "alice", "guitar")
	bob := createTestUser(t, s, "bob", "spanish")
	aliceToken := tokenFor(t, s, alice)
	bobToken := tokenFor(t, s, bob)

	guitar := alice.OfferedSkills[0]
	spanish := bob.OfferedSkills[0]

	// Alice proposes: her guitar lessons for Bob's Spanish tutoring.
	resp := doRequest(t, app, http.MethodPost, "/api/swaps", aliceToken, map[string]any{
		"receiver_id":      bob.ID,
		"offered_skill_id": guitar.ID,
		"wanted_skill_id":  spanish.ID,
		"message":          "weekends work best for me",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var swap models.SwapRequest
	decodeBody(t, resp, &swap)
	assert.Equal(t, models.SwapStatusPending, swap.Status)
	assert.Equal(t, alice.ID, swap.SenderID)
	assert.Equal(t, bob.ID, swap.ReceiverID)

	swapPath := "/api/swaps/" + itoa(swap.ID)

	// The sender cannot accept their own proposal.
	resp = doRequest(t, app, http.MethodPost, swapPath+"/accept", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeForbidden, errorCode(t, resp))

	// Bob accepts.
	resp = doRequest(t, app, http.MethodPost, swapPath+"/accept", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &swap)
	assert.Equal(t, models.SwapStatusAccepted, swap.Status)

	// A second accept finds the swap no longer pending.
	resp = doRequest(t, app, http.MethodPost, swapPath+"/accept", bobToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeInvalidState, errorCode(t, resp))

	// Either participant may complete; one confirmation suffices.
	resp = doRequest(t, app, http.MethodPost, swapPath+"/complete", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &swap)
	assert.Equal(t, models.SwapStatusCompleted, swap.Status)

	// Feedback from both sides.
	resp = doRequest(t, app, http.MethodPost, swapPath+"/feedback", aliceToken, map[string]any{
		"rating": 5, "comment": "great tutor",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, swapPath+"/feedback", bobToken, map[string]any{
		"rating": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// A second submission from the same author hits the unique index.
	resp = doRequest(t, app, http.MethodPost, swapPath+"/feedback", aliceToken, map[string]any{
		"rating": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeDuplicateFeedback, errorCode(t, resp))

	// Bob's aggregate only counts ratings he received, not the one he wrote.
	resp = doRequest(t, app, http.MethodGet, "/api/users/"+itoa(bob.ID)+"/feedback-stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats models.FeedbackStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(1), stats.Count)
	assert.InDelta(t, 5.0, stats.AverageScore, 0.001)
}

func TestCreateSwapWithYourself(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	token := tokenFor(t, s, alice)
	guitar := alice.OfferedSkills[0]

	resp := doRequest(t, app, http.MethodPost, "/api/swaps", token, map[string]any{
		"receiver_id":      alice.ID,
		"offered_skill_id": guitar.ID,
		"wanted_skill_id":  guitar.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSelfSwap, errorCode(t, resp))
}

func TestCreateSwapSkillChecks(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	bob := createTestUser(t, s, "bob", "spanish")
	token := tokenFor(t, s, alice)
	guitar := alice.OfferedSkills[0]
	spanish := bob.OfferedSkills[0]

	// Alice does not offer Spanish.
	resp := doRequest(t, app, http.MethodPost, "/api/swaps", token, map[string]any{
		"receiver_id":      bob.ID,
		"offered_skill_id": spanish.ID,
		"wanted_skill_id":  spanish.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSkillNotOwned, errorCode(t, resp))

	// Bob does not offer guitar.
	resp = doRequest(t, app, http.MethodPost, "/api/swaps", token, map[string]any{
		"receiver_id":      bob.ID,
		"offered_skill_id": guitar.ID,
		"wanted_skill_id":  guitar.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSkillNotOffered, errorCode(t, resp))

	// Neither refused proposal left a row behind.
	var count int64
	require.NoError(t, s.db.Model(&models.SwapRequest{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateSwapPendingSkillNotCounted(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob", "spanish")
	token := tokenFor(t, s, alice)
	spanish := bob.OfferedSkills[0]

	// Attach a skill that is still pending moderation.
	pending := models.Skill{Name: "juggling", Status: models.SkillStatusPending}
	require.NoError(t, s.db.Create(&pending).Error)
	require.NoError(t, s.db.Model(alice).Association("OfferedSkills").Append(&pending))

	resp := doRequest(t, app, http.MethodPost, "/api/swaps", token, map[string]any{
		"receiver_id":      bob.ID,
		"offered_skill_id": pending.ID,
		"wanted_skill_id":  spanish.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSkillNotOwned, errorCode(t, resp))
}

func TestCreateSwapUnknownReceiver(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	token := tokenFor(t, s, alice)
	guitar := alice.OfferedSkills[0]

	resp := doRequest(t, app, http.MethodPost, "/api/swaps", token, map[string]any{
		"receiver_id":      uint(9999),
		"offered_skill_id": guitar.ID,
		"wanted_skill_id":  guitar.ID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeNotFound, errorCode(t, resp))
}

func TestCreateSwapBannedSender(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	bob := createTestUser(t, s, "bob", "spanish")
	require.NoError(t, s.db.Model(alice).Update("is_banned", true).Error)
	token := tokenFor(t, s, alice)

	resp := doRequest(t, app, http.MethodPost, "/api/swaps", token, map[string]any{
		"receiver_id":      bob.ID,
		"offered_skill_id": alice.OfferedSkills[0].ID,
		"wanted_skill_id":  bob.OfferedSkills[0].ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeActorBanned, errorCode(t, resp))
}

func TestGetSwapThirdPartyForbidden(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	bob := createTestUser(t, s, "bob", "spanish")
	carol := createTestUser(t, s, "carol")

	swap := createPendingSwap(t, s, alice, bob)
	path := "/api/swaps/" + itoa(swap.ID)

	resp := doRequest(t, app, http.MethodGet, path, tokenFor(t, s, carol), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, path, tokenFor(t, s, bob), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteSwap(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	bob := createTestUser(t, s, "bob", "spanish")
	aliceToken := tokenFor(t, s, alice)
	bobToken := tokenFor(t, s, bob)

	swap := createPendingSwap(t, s, alice, bob)
	path := "/api/swaps/" + itoa(swap.ID)

	// Only the sender may delete.
	resp := doRequest(t, app, http.MethodDelete, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, path, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteAcceptedSwapConflict(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	bob := createTestUser(t, s, "bob", "spanish")

	swap := createPendingSwap(t, s, alice, bob)
	require.NoError(t, s.db.Model(swap).Update("status", models.SwapStatusAccepted).Error)

	resp := doRequest(t, app, http.MethodDelete, "/api/swaps/"+itoa(swap.ID), tokenFor(t, s, alice), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.CodeInvalidState, errorCode(t, resp))

	// The row survives the refused delete.
	var count int64
	require.NoError(t, s.db.Model(&models.SwapRequest{}).Where("id = ?", swap.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListSwapsStatusFilter(t *testing.T) {
	s, app := newTestServer(t)
	alice := createTestUser(t, s, "alice", "guitar")
	bob := createTestUser(t, s, "bob", "spanish")
	token := tokenFor(t, s, alice)

	first := createPendingSwap(t, s, alice, bob)
	second := createPendingSwap(t, s, alice, bob)
	require.NoError(t, s.db.Model(second).Update("status", models.SwapStatusRejected).Error)

	resp := doRequest(t, app, http.MethodGet, "/api/swaps?status=pending", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Swaps      []models.SwapRequest `json:"swaps"`
		Pagination models.PageInfo      `json:"pagination"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Swaps, 1)
	assert.Equal(t, first.ID, body.Swaps[0].ID)
	assert.Equal(t, int64(1), body.Pagination.Total)

	resp = doRequest(t, app, http.MethodGet, "/api/swaps?status=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// createPendingSwap inserts a pending swap between two users that both offer
// at least one approved skill.
func createPendingSwap(t *testing.T, s *Server, sender, receiver *models.User) *models.SwapRequest {
	t.Helper()
	require.NotEmpty(t, sender.OfferedSkills)
	require.NotEmpty(t, receiver.OfferedSkills)

	swap := &models.SwapRequest{
		SenderID:       sender.ID,
		ReceiverID:     receiver.ID,
		OfferedSkillID: sender.OfferedSkills[0].ID,
		WantedSkillID:  receiver.OfferedSkills[0].ID,
		Status:         models.SwapStatusPending,
	}
	require.NoError(t, s.db.Create(swap).Error)
	return swap
}

func itoa(id uint) string {
	const digits = "0123456789"
	if id == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = digits[id%10]
		id /= 10
	}
	return string(buf[i:])
}
