// Package apperr defines the typed error taxonomy shared by the usecases
// and the HTTP layer. Usecases return these sentinels (possibly wrapped);
// handlers map them to status codes in one place and never retry.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// Authentication / authorization
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")

	// Input
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")

	// Conflicts
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrAlreadyDecided     = errors.New("leave request already decided")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrNoCheckInYet       = errors.New("no check-in recorded today")
	ErrCannotDeleteSelf   = errors.New("cannot delete the currently authenticated account")

	// Dependency failures
	ErrNoManagerAssigned = errors.New("no manager assigned")
	ErrUnknownManager    = errors.New("manager does not exist")
	ErrManagerCycle      = errors.New("manager chain contains a cycle")
)

// StatusCode maps a taxonomy error to its HTTP status. Unknown errors map
// to 500 so storage failures never masquerade as client mistakes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrAccountInactive):
		return fiber.StatusForbidden
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrAlreadyDecided),
		errors.Is(err, ErrAlreadyCheckedIn),
		errors.Is(err, ErrAlreadyCheckedOut),
		errors.Is(err, ErrNoCheckInYet),
		errors.Is(err, ErrCannotDeleteSelf):
		return fiber.StatusConflict
	case errors.Is(err, ErrNoManagerAssigned),
		errors.Is(err, ErrManagerCycle),
		errors.Is(err, ErrUnknownManager):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
