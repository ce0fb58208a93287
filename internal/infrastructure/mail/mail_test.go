package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopapi/backend/internal/application/notification"
	"github.com/shopapi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Provider:       "sendgrid",
		SendGridAPIKey: "SG.test",
		FromAddress:    "noreply@shop.example.com",
		FromName:       "Shop",
	}
}

func TestSendGridSender_Send(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		body    map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender, err := NewSendGridSender(testMailConfig(), WithHost(srv.URL))
	require.NoError(t, err)

	err = sender.Send(context.Background(), notification.Message{
		To:      "buyer@example.com",
		Subject: "Order #1 placed",
		Text:    "Thanks",
	})

	require.NoError(t, err)
	assert.Equal(t, "/v3/mail/send", gotPath)
	assert.Equal(t, "Bearer SG.test", gotAuth)
	assert.Equal(t, "Order #1 placed", body["subject"])
	from := body["from"].(map[string]any)
	assert.Equal(t, "noreply@shop.example.com", from["email"])
}

func TestSendGridSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	sender, err := NewSendGridSender(testMailConfig(), WithHost(srv.URL))
	require.NoError(t, err)

	err = sender.Send(context.Background(), notification.Message{To: "a@b.co", Subject: "s", Text: "t"})

	assert.ErrorContains(t, err, "status 401")
}

func TestNewSendGridSender_Validation(t *testing.T) {
	cfg := testMailConfig()
	cfg.SendGridAPIKey = ""
	_, err := NewSendGridSender(cfg)
	assert.Error(t, err)

	cfg = testMailConfig()
	cfg.FromAddress = ""
	_, err = NewSendGridSender(cfg)
	assert.Error(t, err)
}

func TestLogSender_Send(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewLogSender(zap.New(core))

	require.NoError(t, sender.Send(context.Background(), notification.Message{To: "a@b.co", Subject: "Hi", Text: "body"}))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "a@b.co", fields["to"])
	assert.Equal(t, "Hi", fields["subject"])
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(config.MailConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, m)

	m, err = NewMailer(testMailConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, m)

	_, err = NewMailer(config.MailConfig{Provider: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}
