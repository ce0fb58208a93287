// Package mail provides the outgoing email transports.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopapi/backend/internal/application/notification"
	"github.com/shopapi/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const sendEndpoint = "/v3/mail/send"

// SendGridSender delivers mail through the SendGrid v3 API
type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger *zap.Logger
	host   string
	apiKey string
}

// SendGridOption configures a SendGridSender
type SendGridOption func(*SendGridSender)

// WithHost overrides the API host, e.g. for a local mock server
func WithHost(host string) SendGridOption {
	return func(s *SendGridSender) {
		s.host = host
	}
}

// WithLogger sets the sender's logger
func WithLogger(logger *zap.Logger) SendGridOption {
	return func(s *SendGridSender) {
		s.logger = logger
	}
}

// NewSendGridSender creates a sender from mail settings
func NewSendGridSender(cfg config.MailConfig, opts ...SendGridOption) (*SendGridSender, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, errors.New("sendgrid: api key is required")
	}
	if cfg.FromAddress == "" {
		return nil, errors.New("sendgrid: from address is required")
	}

	s := &SendGridSender{
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: zap.NewNop(),
		apiKey: cfg.SendGridAPIKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	request := sendgrid.GetRequest(s.apiKey, sendEndpoint, s.host)
	request.Method = http.MethodPost
	s.client = &sendgrid.Client{Request: request}
	return s, nil
}

// Send implements notification.Mailer
func (s *SendGridSender) Send(ctx context.Context, msg notification.Message) error {
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmailPlainText(s.from, msg.Subject, to, msg.Text)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}

	s.logger.Debug("Mail accepted by SendGrid",
		zap.String("subject", msg.Subject),
		zap.Int("status", resp.StatusCode))
	return nil
}

var _ notification.Mailer = (*SendGridSender)(nil)
