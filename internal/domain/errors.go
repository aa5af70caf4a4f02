package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdminInactive        = errors.New("admin account is inactive")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrInvalidMonth         = errors.New("invalid month token")
	ErrInvalidAmount        = errors.New("bill amount must be positive")
	ErrDuplicateBill        = errors.New("bill already exists for this tenant and month")
	ErrBillAlreadyPaid      = errors.New("bill is already paid")
	ErrBillNotPaid          = errors.New("bill is not paid")
	ErrGenerationInProgress = errors.New("a bill generation run is already in progress")
	ErrTenantNotActive      = errors.New("tenant is not active")
)
