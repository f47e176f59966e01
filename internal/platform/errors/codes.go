// Package errors provides structured domain errors with localizable codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Roster errors
	CodeRosterInvalid Code = "ROSTER_INVALID"

	// Assignment errors
	CodeGiverInvalid    Code = "GIVER_INVALID"
	CodeReceiverInvalid Code = "RECEIVER_INVALID"
	CodeNoCandidates    Code = "NO_CANDIDATES"
	CodeSelfAssignment  Code = "SELF_ASSIGNMENT"
	CodeAlreadyAssigned Code = "ALREADY_ASSIGNED"
	CodeReceiverTaken   Code = "RECEIVER_TAKEN"

	// Storage errors
	CodeStorageFailure Code = "STORAGE_FAILURE"
)

// UserFacing reports whether the code describes a caller mistake or an
// exhausted exchange rather than a system fault.
func (c Code) UserFacing() bool {
	switch c {
	case CodeGiverInvalid, CodeReceiverInvalid, CodeNoCandidates,
		CodeSelfAssignment, CodeAlreadyAssigned, CodeReceiverTaken:
		return true
	default:
		return false
	}
}

// HTTPStatus is the status of a page reporting the code. User-facing codes
// are shown inline next to the form, so the page itself succeeds.
func (c Code) HTTPStatus() int {
	if c.UserFacing() {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// MessageKey returns the i18n catalog key for the user-facing message.
func (c Code) MessageKey() string {
	return "errors." + string(c)
}
