package model

import (
	"errors"
	"fmt"
)

// RepoError represents a domain error raised by repository operations.
//
// Repository errors include:
//   - Not found: lookup by key or id matched nothing
//   - Referential: a write referenced an entity that does not exist
//   - Invalid state: operating on a deleted transition handle
//   - Empty input: exporting an animation from zero frames
//   - Missing start frame: previewing a repository with no start frame
//
// RepoError carries structured fields for diagnostics and error mapping.
type RepoError struct {
	// Code identifies the error category.
	Code RepoErrorCode

	// Message is a human-readable description.
	Message string

	// Entity names the kind of record involved ("image", "frame", "transition").
	Entity string

	// Key identifies the record involved (content key or decimal id).
	Key string
}

// RepoErrorCode categorizes repository errors.
type RepoErrorCode string

const (
	// ErrCodeNotFound indicates a lookup matched nothing.
	ErrCodeNotFound RepoErrorCode = "NOT_FOUND"

	// ErrCodeReferential indicates a write referenced a missing entity.
	ErrCodeReferential RepoErrorCode = "REFERENTIAL"

	// ErrCodeInvalidState indicates an operation on an unusable handle,
	// such as reading endpoints of a deleted transition.
	ErrCodeInvalidState RepoErrorCode = "INVALID_STATE"

	// ErrCodeEmptyInput indicates an operation received zero frames.
	ErrCodeEmptyInput RepoErrorCode = "EMPTY_INPUT"

	// ErrCodeMissingStart indicates a preview was requested with no start
	// frame stored and none supplied.
	ErrCodeMissingStart RepoErrorCode = "MISSING_START_FRAME"
)

// Error implements the error interface.
func (e *RepoError) Error() string {
	if e.Entity != "" && e.Key != "" {
		return fmt.Sprintf("%s: %s (%s %s)", e.Code, e.Message, e.Entity, e.Key)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Entity)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsReferential reports whether err is a referential integrity error.
func IsReferential(err error) bool {
	return hasCode(err, ErrCodeReferential)
}

// IsInvalidState reports whether err is an invalid-state error.
// Missing-start errors also count: a repository without a start frame is a
// state problem, not an input problem.
func IsInvalidState(err error) bool {
	return hasCode(err, ErrCodeInvalidState) || hasCode(err, ErrCodeMissingStart)
}

// IsEmptyInput reports whether err is an empty-input error.
func IsEmptyInput(err error) bool {
	return hasCode(err, ErrCodeEmptyInput)
}

// IsMissingStart reports whether err is a missing-start-frame error.
func IsMissingStart(err error) bool {
	return hasCode(err, ErrCodeMissingStart)
}

func hasCode(err error, code RepoErrorCode) bool {
	var re *RepoError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewNotFound creates a RepoError for a failed lookup.
func NewNotFound(entity, key string) *RepoError {
	return &RepoError{
		Code:    ErrCodeNotFound,
		Message: "no such " + entity,
		Entity:  entity,
		Key:     key,
	}
}

// NewReferential creates a RepoError for a write that referenced a missing
// entity.
func NewReferential(op, entity, key string) *RepoError {
	return &RepoError{
		Code:    ErrCodeReferential,
		Message: fmt.Sprintf("%s references unknown %s", op, entity),
		Entity:  entity,
		Key:     key,
	}
}

// NewInvalidState creates a RepoError for an operation on an unusable handle.
func NewInvalidState(message string) *RepoError {
	return &RepoError{
		Code:    ErrCodeInvalidState,
		Message: message,
	}
}

// NewEmptyInput creates a RepoError for an operation given zero frames.
func NewEmptyInput(op string) *RepoError {
	return &RepoError{
		Code:    ErrCodeEmptyInput,
		Message: op + " requires at least one frame",
	}
}

// NewMissingStart creates a RepoError for a preview with no start frame.
func NewMissingStart() *RepoError {
	return &RepoError{
		Code:    ErrCodeMissingStart,
		Message: "repository has no start frame and none was supplied",
	}
}
