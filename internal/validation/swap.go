package validation

import (
	"fmt"
	"regexp"
	"strings"

	"skillswap/internal/models"
)

var skillNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9 +#./-]{1,78}$`)

// ValidateSkillName validates a normalized (lowercased, trimmed) skill name.
func ValidateSkillName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("skill name is required")
	}
	if !skillNameRegex.MatchString(name) {
		return fmt.Errorf("skill name must be 2-79 characters of letters, digits, spaces or + # . / -")
	}
	return nil
}

// ValidateSwapMessage bounds the optional message attached to a swap request.
func ValidateSwapMessage(message string) error {
	if len(message) > models.MaxSwapMessageLen {
		return fmt.Errorf("message must not exceed %d characters", models.MaxSwapMessageLen)
	}
	return nil
}

// ValidateRating checks the feedback rating range.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// ValidateFeedbackComment bounds the optional feedback comment.
func ValidateFeedbackComment(comment string) error {
	if len(comment) > models.MaxFeedbackCommentLen {
		return fmt.Errorf("comment must not exceed %d characters", models.MaxFeedbackCommentLen)
	}
	return nil
}
