// Package apperrors holds the error taxonomy the controllers translate to
// HTTP status codes. The messages are user-facing and end up verbatim in the
// JSON error body.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrCardNameNotProvided = errors.New("Please provide a name for the card.")
	ErrCardNameBlank       = errors.New("Card name cannot be set to blank.")
	ErrInvalidCredentials  = errors.New("Invalid email or password.")
)

type CardNotFoundError struct {
	ID uint
}

func (e *CardNotFoundError) Error() string {
	return fmt.Sprintf("Could not find card with id: %d.", e.ID)
}

type InsufficientPrivilegesError struct {
	Email string
}

func (e *InsufficientPrivilegesError) Error() string {
	return fmt.Sprintf("User %s lacks privileges for this action.", e.Email)
}

type InvalidSortFieldError struct {
	Field       string
	ValidFields []string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("Field %s is not a valid sorting field. Valid sorting fields: [%s].",
		e.Field, strings.Join(e.ValidFields, ", "))
}

// BadDateFormatError carries the original parse failure message.
type BadDateFormatError struct {
	Msg string
}

func (e *BadDateFormatError) Error() string { return e.Msg }

// ValidationError collects every field violation found in a payload so the
// caller sees them all at once instead of one per round trip.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Violations, " ") }

type EmailExistsError struct {
	Email string
}

func (e *EmailExistsError) Error() string {
	return fmt.Sprintf("There is already a user with email %s in the database.", e.Email)
}

// Status maps an error to the HTTP status code the boundary should answer
// with. Unknown errors are treated as internal failures.
func Status(err error) int {
	var (
		notFound   *CardNotFoundError
		forbidden  *InsufficientPrivilegesError
		badSort    *InvalidSortFieldError
		badDate    *BadDateFormatError
		validation *ValidationError
		conflict   *EmailExistsError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &badSort), errors.As(err, &badDate), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, ErrCardNameNotProvided), errors.Is(err, ErrCardNameBlank):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
