package models

import "time"

// MaxFeedbackCommentLen bounds the optional feedback comment.
const MaxFeedbackCommentLen = 1000

// Feedback is one participant's rating of a completed swap. The composite
// unique index enforces at most one row per (swap, author) pair at the
// storage level, so concurrent submissions cannot both land.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SwapID    uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_author" json:"swap_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_author" json:"author_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"size:1000" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Swap   *SwapRequest `gorm:"foreignKey:SwapID" json:"swap,omitempty"`
	Author *User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM
func (Feedback) TableName() string {
	return "feedbacks"
}

// FeedbackStats aggregates ratings received by a user across their swaps.
type FeedbackStats struct {
	UserID       uint        `json:"user_id"`
	Count        int64       `json:"count"`
	AverageScore float64     `json:"average_score"`
	RatingCounts map[int]int `json:"rating_counts"`
}
