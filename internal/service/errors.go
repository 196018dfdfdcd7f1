package service

import (
	"errors"
	"fmt"
)

// Domain errors shared by the post and folder services.
var (
	// ErrPostNotFound is returned when a post doesn't exist or belongs to
	// another user. Cross-user access is indistinguishable from absence.
	ErrPostNotFound = errors.New("post not found")

	// ErrFolderNotFound is returned when a folder doesn't exist or belongs
	// to another user.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrFolderNameTaken is returned when a user already has a folder with
	// the same name, compared case-insensitively.
	ErrFolderNameTaken = errors.New("a folder with this name already exists")
)

// ValidationError wraps input validation failures with field details.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GenerationError is returned when the content generation endpoint fails or
// returns something that cannot be parsed as a post list.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("content generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsNotFound checks if error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrFolderNotFound)
}

// IsConflict checks if error is a duplicate-name conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrFolderNameTaken)
}

// IsValidation checks if error is an input validation error.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsGeneration checks if error came from the generation endpoint.
func IsGeneration(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
