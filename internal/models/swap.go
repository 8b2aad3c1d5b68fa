package models

import "time"

// SwapStatus represents the lifecycle status of a swap request.
type SwapStatus string

const (
	// SwapStatusPending indicates a swap request awaiting the receiver's decision.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the receiver agreed to the exchange.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the receiver declined. Terminal.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCompleted indicates a participant confirmed the exchange happened. Terminal.
	SwapStatusCompleted SwapStatus = "completed"
)

// Terminal reports whether no further transition is permitted from s.
func (s SwapStatus) Terminal() bool {
	return s == SwapStatusRejected || s == SwapStatusCompleted
}

// MaxSwapMessageLen bounds the optional message attached to a swap request.
const MaxSwapMessageLen = 500

// SwapRequest is a proposal by the sender to exchange one of their offered
// skills for one of the receiver's offered skills.
type SwapRequest struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	SenderID       uint       `gorm:"not null;index" json:"sender_id"`
	ReceiverID     uint       `gorm:"not null;index" json:"receiver_id"`
	OfferedSkillID uint       `gorm:"not null" json:"offered_skill_id"`
	WantedSkillID  uint       `gorm:"not null" json:"wanted_skill_id"`
	Message        string     `gorm:"size:500" json:"message,omitempty"`
	Status         SwapStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Sender       *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver     *User  `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	OfferedSkill *Skill `gorm:"foreignKey:OfferedSkillID" json:"offered_skill,omitempty"`
	WantedSkill  *Skill `gorm:"foreignKey:WantedSkillID" json:"wanted_skill,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// Participant reports whether the given user is the sender or receiver.
func (s *SwapRequest) Participant(userID uint) bool {
	return s.SenderID == userID || s.ReceiverID == userID
}

// Counterpart returns the other participant's ID, or 0 when userID is not a participant.
func (s *SwapRequest) Counterpart(userID uint) uint {
	switch userID {
	case s.SenderID:
		return s.ReceiverID
	case s.ReceiverID:
		return s.SenderID
	}
	return 0
}
