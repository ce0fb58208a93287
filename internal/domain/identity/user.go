package identity

import (
	"regexp"
	"strings"

	"github.com/shopapi/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserType distinguishes shop partners from buyers
type UserType string

const (
	UserTypeShop  UserType = "shop"
	UserTypeBuyer UserType = "buyer"
)

// IsValid reports whether the user type is known
func (t UserType) IsValid() bool {
	return t == UserTypeShop || t == UserTypeBuyer
}

// Password cost for bcrypt
var bcryptCost = 12

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.@+]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterRegex   = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

// User represents an account. Email is the login key.
// New accounts start inactive and are activated by email confirmation.
type User struct {
	shared.BaseAggregateRoot
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Company      string
	Position     string
	Type         UserType
	IsActive     bool
	IsStaff      bool
}

// Profile holds the optional, freely editable user attributes
type Profile struct {
	FirstName string
	LastName  string
	Company   string
	Position  string
}

// NewUser creates a new inactive user
func NewUser(email, username, password string, userType UserType) (*User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if userType == "" {
		userType = UserTypeBuyer
	}
	if !userType.IsValid() {
		return nil, shared.NewValidationError("type", "Type must be one of: shop, buyer")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Username:          strings.TrimSpace(username),
		PasswordHash:      passwordHash,
		Type:              userType,
	}, nil
}

// MarkRegistered records the registration event once the user has an ID
// and a confirmation token has been issued for it.
func (u *User) MarkRegistered(token *ConfirmEmailToken) {
	u.AddDomainEvent(NewUserRegisteredEvent(u, token.Key))
}

// SetProfile replaces the profile attributes
func (u *User) SetProfile(p Profile) error {
	fields := map[string]string{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"company":    p.Company,
		"position":   p.Position,
	}
	for field, value := range fields {
		if len(value) > 100 {
			return shared.NewValidationError(field, "Cannot exceed 100 characters")
		}
	}

	u.FirstName = strings.TrimSpace(p.FirstName)
	u.LastName = strings.TrimSpace(p.LastName)
	u.Company = strings.TrimSpace(p.Company)
	u.Position = strings.TrimSpace(p.Position)
	u.Touch()
	return nil
}

// SetEmail changes the login email
func (u *User) SetEmail(email string) error {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = email
	u.Touch()
	return nil
}

// SetUsername changes the username
func (u *User) SetUsername(username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	u.Username = strings.TrimSpace(username)
	u.Touch()
	return nil
}

// SetPassword sets a new password
func (u *User) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Activate marks the account as confirmed
func (u *User) Activate() {
	if u.IsActive {
		return
	}
	u.IsActive = true
	u.Touch()
	u.AddDomainEvent(NewUserActivatedEvent(u))
}

// IsShop returns true if the user is a shop partner
func (u *User) IsShop() bool {
	return u.Type == UserTypeShop
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	return u.IsActive
}

// ValidatePassword applies the password policy: at least 8 characters,
// at least one letter and at least one digit.
func ValidatePassword(password string) error {
	if password == "" {
		return shared.NewValidationError("password", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewValidationError("password", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewValidationError("password", "Password cannot exceed 128 characters")
	}
	if !digitRegex.MatchString(password) {
		return shared.NewValidationError("password", "Password must contain at least one digit")
	}
	if !letterRegex.MatchString(password) {
		return shared.NewValidationError("password", "Password must contain at least one letter")
	}
	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewValidationError("username", "Username cannot be empty")
	}
	if len(username) > 150 {
		return shared.NewValidationError("username", "Username cannot exceed 150 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewValidationError("username", "Username can only contain letters, digits and @.+-_")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewValidationError("email", "Email cannot be empty")
	}
	if len(email) > 254 {
		return shared.NewValidationError("email", "Email cannot exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("email", "Invalid email format")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

