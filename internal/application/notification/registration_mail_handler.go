package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RegistrationMailHandler sends the activation link to newly registered users
type RegistrationMailHandler struct {
	mailer    Mailer
	publicURL string
	logger    *zap.Logger
}

// NewRegistrationMailHandler creates the handler. publicURL is the externally
// reachable base address of the API, e.g. https://shop.example.com.
func NewRegistrationMailHandler(mailer Mailer, publicURL string, logger *zap.Logger) *RegistrationMailHandler {
	return &RegistrationMailHandler{
		mailer:    mailer,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *RegistrationMailHandler) EventTypes() []string {
	return []string{identity.EventTypeUserRegistered}
}

// Handle mails the confirmation link for a UserRegistered event
func (h *RegistrationMailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*identity.UserRegisteredEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	link := h.ActivationLink(e.ConfirmKey)
	msg := Message{
		To:      e.Email,
		Subject: "Confirm your email",
		Text: fmt.Sprintf("Hello %s,\n\nFollow the link below to activate your account:\n%s\n\n"+
			"If you did not register, ignore this message.\n", e.Username, link),
	}
	if err := h.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send activation mail: %w", err)
	}

	h.logger.Info("Activation mail sent", zap.Uint64("user_id", e.UserID))
	return nil
}

// ActivationLink returns the GET confirmation URL for key
func (h *RegistrationMailHandler) ActivationLink(key string) string {
	return h.publicURL + "/api/v1/users/confirm-email/" + key
}

var _ shared.EventHandler = (*RegistrationMailHandler)(nil)
