// Package email mails new notifications to a fixed recipient list.
package email

import (
	"context"
	"fmt"
	"html"
	"slices"
	"strings"

	"gopkg.in/gomail.v2"

	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/config"
	"agencydesk/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	Recipients  []string
	// Types limits mail to these notification types; empty means all.
	Types []domain.Type
	// BaseURL prefixes notification links (e.g., "http://localhost:5173")
	BaseURL string
}

// SMTPConfigFrom converts the notify.email section.
func SMTPConfigFrom(cfg config.EmailSinkConfig) SMTPConfig {
	types := make([]domain.Type, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		types = append(types, domain.Type(t))
	}
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		Recipients:  cfg.Recipients,
		Types:       types,
		BaseURL:     cfg.BaseURL,
	}
}

const mailTimeLayout = "2006-01-02 15:04 MST"

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotificationSink is a notification sink sending one mail per
// notification.
type SMTPNotificationSink struct {
	config SMTPConfig
	dialer sender
	logger logger.Interface
}

func NewSMTPNotificationSink(cfg SMTPConfig, log logger.Interface) *SMTPNotificationSink {
	return &SMTPNotificationSink{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: log.With("component", "email.notifications"),
	}
}

func (s *SMTPNotificationSink) Name() string { return "email" }

// Deliver mails n unless its type is filtered out or nobody is subscribed.
func (s *SMTPNotificationSink) Deliver(_ context.Context, n domain.Notification) error {
	if len(s.config.Recipients) == 0 || !s.wants(n.Type) {
		return nil
	}

	link := ""
	if n.Link != "" {
		link = strings.TrimRight(s.config.BaseURL, "/") + n.Link
	}

	sentAt := biztime.Format(n.CreatedAt, mailTimeLayout)
	subject := fmt.Sprintf("[%s] %s", n.Type, n.Title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>%s</h2>
			<p>%s</p>
			<p><small>%s</small></p>
			%s
		</body>
		</html>
	`, html.EscapeString(n.Title), html.EscapeString(n.Message), sentAt, htmlLink(link))

	plainBody := n.Title + "\n\n" + n.Message + "\n" + sentAt + "\n"
	if link != "" {
		plainBody += "\n" + link + "\n"
	}

	if err := s.sendEmail(subject, htmlBody, plainBody); err != nil {
		s.logger.Warnw("failed to mail notification", "notification_id", n.ID, "error", err)
		return err
	}
	return nil
}

func (s *SMTPNotificationSink) wants(t domain.Type) bool {
	return len(s.config.Types) == 0 || slices.Contains(s.config.Types, t)
}

func htmlLink(link string) string {
	if link == "" {
		return ""
	}
	escaped := html.EscapeString(link)
	return fmt.Sprintf(`<p><a href="%s">%s</a></p>`, escaped, escaped)
}

func (s *SMTPNotificationSink) sendEmail(subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", s.config.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
