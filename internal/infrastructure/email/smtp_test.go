package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/config"
	"agencydesk/internal/shared/logger"
)

type mockSender struct {
	SendFunc func(m ...*gomail.Message) error
	Sent     []*gomail.Message
}

func (m *mockSender) DialAndSend(msgs ...*gomail.Message) error {
	m.Sent = append(m.Sent, msgs...)
	if m.SendFunc != nil {
		return m.SendFunc(msgs...)
	}
	return nil
}

func newSink(cfg SMTPConfig) (*SMTPNotificationSink, *mockSender) {
	s := NewSMTPNotificationSink(cfg, logger.Nop())
	m := &mockSender{}
	s.dialer = m
	return s, m
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSMTPNotificationSink_Deliver(t *testing.T) {
	s, m := newSink(SMTPConfig{
		FromAddress: "noreply@agencydesk.local",
		FromName:    "AgencyDesk",
		Recipients:  []string{"ops@agency.test", "lead@agency.test"},
		BaseURL:     "http://localhost:5173/",
	})

	err := s.Deliver(context.Background(), domain.Notification{
		ID:        "n1",
		Type:      domain.TypeTicket,
		Title:     "New comment",
		Message:   "admin commented on a ticket <script>",
		Link:      "/tickets/t1",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, m.Sent, 1)

	msg := m.Sent[0]
	assert.Equal(t, []string{"ops@agency.test", "lead@agency.test"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"[ticket] New comment"}, msg.GetHeader("Subject"))
	raw := render(t, msg)
	assert.Contains(t, raw, "http://localhost:5173/tickets/t1")
	assert.NotContains(t, raw, "<script>")
	assert.Contains(t, raw, "2024-03-01 12:00 UTC")
}

func TestSMTPNotificationSink_Skips(t *testing.T) {
	tests := []struct {
		name string
		cfg  SMTPConfig
	}{
		{"no recipients", SMTPConfig{}},
		{"filtered type", SMTPConfig{Recipients: []string{"ops@agency.test"}, Types: []domain.Type{domain.TypeWarning}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newSink(tt.cfg)
			require.NoError(t, s.Deliver(context.Background(), domain.Notification{ID: "n1", Type: domain.TypeInfo}))
			assert.Empty(t, m.Sent)
		})
	}
}

func TestSMTPNotificationSink_SendError(t *testing.T) {
	s, m := newSink(SMTPConfig{Recipients: []string{"ops@agency.test"}})
	m.SendFunc = func(...*gomail.Message) error { return errors.New("connection refused") }

	err := s.Deliver(context.Background(), domain.Notification{ID: "n1", Type: domain.TypeInfo})
	assert.ErrorContains(t, err, "failed to send email")
	assert.Equal(t, "email", s.Name())
}

func TestSMTPConfigFrom(t *testing.T) {
	cfg := SMTPConfigFrom(config.EmailSinkConfig{
		SMTPHost:   "mail.agency.test",
		SMTPPort:   587,
		Recipients: []string{"ops@agency.test"},
		Types:      []string{"warning", "ticket"},
		BaseURL:    "https://desk.agency.test",
	})

	assert.Equal(t, "mail.agency.test", cfg.Host)
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, []domain.Type{domain.TypeWarning, domain.TypeTicket}, cfg.Types)
	assert.Equal(t, "https://desk.agency.test", cfg.BaseURL)
}
