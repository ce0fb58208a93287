package identity

import "github.com/shopapi/backend/internal/domain/shared"

// Identity errors
var (
	ErrUserNotFound       = shared.NewDomainError("USER_NOT_FOUND", "User not found")
	ErrContactNotFound    = shared.NewDomainError("CONTACT_NOT_FOUND", "Contact not found")
	ErrEmailTaken         = shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	ErrUsernameTaken      = shared.NewDomainError("USERNAME_TAKEN", "A user with this username already exists")
	ErrInvalidConfirmKey  = shared.NewDomainError("VALIDATION_ERROR", "Invalid email confirmation key")
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "No user found with this email and password")
	ErrAccountInactive    = shared.NewDomainError("ACCOUNT_INACTIVE", "This account is not confirmed or has been deactivated")
)
