package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced to API clients. Every failure the ledger can produce
// maps to exactly one of these so callers can distinguish them.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidState      = "INVALID_STATE"
	CodeSelfSwap          = "SELF_SWAP"
	CodeSkillNotOwned     = "SKILL_NOT_OWNED"
	CodeSkillNotOffered   = "SKILL_NOT_OFFERED"
	CodeActorBanned       = "ACTOR_BANNED"
	CodeInvalidRating     = "INVALID_RATING"
	CodeDuplicateFeedback = "DUPLICATE_FEEDBACK"
	CodeSwapNotCompleted  = "SWAP_NOT_COMPLETED"
	CodeNotParticipant    = "NOT_PARTICIPANT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the application error code from err, or CodeInternal when
// err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Predefined error constructors

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewInvalidStateError(message string) *AppError {
	return &AppError{Code: CodeInvalidState, Message: message}
}

func NewSelfSwapError() *AppError {
	return &AppError{Code: CodeSelfSwap, Message: "Cannot propose a swap with yourself"}
}

func NewSkillNotOwnedError(skillID uint) *AppError {
	return &AppError{
		Code:    CodeSkillNotOwned,
		Message: fmt.Sprintf("Skill %d is not in your approved offered skills", skillID),
	}
}

func NewSkillNotOfferedError(skillID uint) *AppError {
	return &AppError{
		Code:    CodeSkillNotOffered,
		Message: fmt.Sprintf("Skill %d is not offered by the receiver", skillID),
	}
}

func NewActorBannedError() *AppError {
	return &AppError{Code: CodeActorBanned, Message: "Banned users cannot take part in swaps"}
}

func NewInvalidRatingError(rating int) *AppError {
	return &AppError{
		Code:    CodeInvalidRating,
		Message: fmt.Sprintf("Rating must be between 1 and 5, got %d", rating),
	}
}

func NewDuplicateFeedbackError() *AppError {
	return &AppError{Code: CodeDuplicateFeedback, Message: "Feedback already submitted for this swap"}
}

func NewSwapNotCompletedError() *AppError {
	return &AppError{Code: CodeSwapNotCompleted, Message: "Feedback is only allowed on completed swaps"}
}

func NewNotParticipantError() *AppError {
	return &AppError{Code: CodeNotParticipant, Message: "Only swap participants may leave feedback"}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
