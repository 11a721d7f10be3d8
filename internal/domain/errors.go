package domain

import "errors"

var (
	// ErrRecordLocked is returned when a save or close is attempted on a
	// closing that already left the ABERTO/REABERTO states. Nothing is
	// written in that case.
	ErrRecordLocked = errors.New("closing record is locked")

	// ErrValidation marks malformed user input on manual forms.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks an actor without the role an operation requires.
	ErrForbidden = errors.New("operation not allowed for this role")

	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("record not found")
)
