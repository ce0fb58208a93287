package identity

import "github.com/shopapi/backend/internal/domain/shared"

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered = "UserRegistered"
	EventTypeUserActivated  = "UserActivated"
)

// UserRegisteredEvent is published after a new inactive user and its
// confirmation token have been committed.
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID     uint64 `json:"user_id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	ConfirmKey string `json:"confirm_key"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User, confirmKey string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		Username:        user.Username,
		ConfirmKey:      confirmKey,
	}
}

// UserActivatedEvent is published when a user confirms their email
type UserActivatedEvent struct {
	shared.BaseDomainEvent
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
}

// NewUserActivatedEvent creates a new UserActivatedEvent
func NewUserActivatedEvent(user *User) *UserActivatedEvent {
	return &UserActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserActivated, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
	}
}
