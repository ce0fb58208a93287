package mail

import (
	"context"
	"fmt"

	"github.com/shopapi/backend/internal/application/notification"
	"github.com/shopapi/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them.
// It is the development default.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements notification.Mailer
func (s *LogSender) Send(_ context.Context, msg notification.Message) error {
	s.logger.Info("Outgoing mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text))
	return nil
}

// NewMailer picks the transport named by cfg.Provider
func NewMailer(cfg config.MailConfig, logger *zap.Logger) (notification.Mailer, error) {
	switch cfg.Provider {
	case "", "log":
		return NewLogSender(logger), nil
	case "sendgrid":
		return NewSendGridSender(cfg, WithLogger(logger))
	}
	return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
}
