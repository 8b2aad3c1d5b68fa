// Package authz contains the pure authorization predicates guarding every
// swap-request transition. Predicates operate on already-loaded records and
// never touch storage, so they can be tested against fixed fixtures.
package authz

import "skillswap/internal/models"

// CanCreate validates a new swap proposal from sender to receiver. Both users
// must be loaded with their approved OfferedSkills association; receiver is
// nil when no such user exists.
func CanCreate(sender, receiver *models.User, offeredSkillID, wantedSkillID uint) error {
	if sender == nil {
		return models.NewUnauthorizedError("Sender not found")
	}
	if receiver != nil && sender.ID == receiver.ID {
		return models.NewSelfSwapError()
	}
	if receiver == nil {
		return models.NewNotFoundError("User", "receiver")
	}
	if sender.IsBanned || receiver.IsBanned {
		return models.NewActorBannedError()
	}
	if !sender.OffersSkill(offeredSkillID) {
		return models.NewSkillNotOwnedError(offeredSkillID)
	}
	if !receiver.OffersSkill(wantedSkillID) {
		return models.NewSkillNotOfferedError(wantedSkillID)
	}
	return nil
}

// CanAccept permits only the receiver of a swap to accept it.
func CanAccept(actorID uint, swap *models.SwapRequest) error {
	if swap.ReceiverID != actorID {
		return models.NewForbiddenError("Only the receiver can accept a swap request")
	}
	return nil
}

// CanReject permits only the receiver of a swap to reject it.
func CanReject(actorID uint, swap *models.SwapRequest) error {
	if swap.ReceiverID != actorID {
		return models.NewForbiddenError("Only the receiver can reject a swap request")
	}
	return nil
}

// CanComplete permits either participant to mark an accepted swap completed.
func CanComplete(actorID uint, swap *models.SwapRequest) error {
	if !swap.Participant(actorID) {
		return models.NewForbiddenError("Only swap participants can complete a swap")
	}
	return nil
}

// CanDelete permits the sender to remove a swap request while it is pending.
func CanDelete(actorID uint, swap *models.SwapRequest) error {
	if swap.SenderID != actorID {
		return models.NewForbiddenError("Only the sender can delete a swap request")
	}
	if swap.Status != models.SwapStatusPending {
		return models.NewInvalidStateError("Only pending swap requests can be deleted")
	}
	return nil
}

// CanGiveFeedback permits a participant of a completed swap to leave feedback.
func CanGiveFeedback(actorID uint, swap *models.SwapRequest) error {
	if !swap.Participant(actorID) {
		return models.NewNotParticipantError()
	}
	if swap.Status != models.SwapStatusCompleted {
		return models.NewSwapNotCompletedError()
	}
	return nil
}
