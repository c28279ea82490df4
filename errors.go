package pikov

import "github.com/roach88/pikov/internal/model"

// RepoError is the structured error type returned by repository operations.
type RepoError = model.RepoError

// RepoErrorCode categorizes repository errors.
type RepoErrorCode = model.RepoErrorCode

// Error codes carried by RepoError.
const (
	ErrCodeNotFound     = model.ErrCodeNotFound
	ErrCodeReferential  = model.ErrCodeReferential
	ErrCodeInvalidState = model.ErrCodeInvalidState
	ErrCodeEmptyInput   = model.ErrCodeEmptyInput
	ErrCodeMissingStart = model.ErrCodeMissingStart
)

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return model.IsNotFound(err) }

// IsReferential reports whether err is a referential integrity error.
func IsReferential(err error) bool { return model.IsReferential(err) }

// IsInvalidState reports whether err is an invalid-state error.
// Missing-start errors also count.
func IsInvalidState(err error) bool { return model.IsInvalidState(err) }

// IsEmptyInput reports whether err is an empty-input error.
func IsEmptyInput(err error) bool { return model.IsEmptyInput(err) }

// IsMissingStart reports whether err is a missing-start-frame error.
func IsMissingStart(err error) bool { return model.IsMissingStart(err) }
