package utils

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrDonationNotFound     = errors.New("donation not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrConflict     = errors.New("conflicting concurrent update")
	ErrValidation   = errors.New("validation failed")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
)
