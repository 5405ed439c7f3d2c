package waitlist

import (
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
)

const duplicateEmailMessage = "this email is already on the waitlist"

// newDuplicateEmailError is the single conflict constructor for the package
// so the pre-check path and the constraint-violation path surface the exact
// same error to callers.
func newDuplicateEmailError(err error) *apperrors.AppError {
	return apperrors.NewConflictError(duplicateEmailMessage, err)
}
