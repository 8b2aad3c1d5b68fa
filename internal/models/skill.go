package models

import "time"

// SkillStatus defines moderation states for skill directory entries.
type SkillStatus string

const (
	// SkillStatusPending indicates the skill awaits moderation.
	SkillStatusPending SkillStatus = "pending"
	// SkillStatusApproved indicates the skill may be referenced by swaps.
	SkillStatusApproved SkillStatus = "approved"
	// SkillStatusRejected indicates the skill was rejected by moderation.
	SkillStatusRejected SkillStatus = "rejected"
)

// Skill is a directory entry for a skill name. Names are stored lowercase so
// the unique index is effectively case-insensitive.
type Skill struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Status    SkillStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}
