package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/pkg/ats"

	"gopkg.in/gomail.v2"
)

// Dialer opens one SMTP connection. *gomail.Dialer satisfies it.
type Dialer interface {
	Dial() (gomail.SendCloser, error)
}

type emailService struct {
	dialer      Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

var _ ats.CandidateEmailService = &emailService{}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string, log logger.ILogger) ats.CandidateEmailService {
	return NewEmailServiceWithDialer(gomail.NewDialer(host, port, username, password), senderEmail, senderName, log)
}

func NewEmailServiceWithDialer(d Dialer, senderEmail, senderName string, log logger.ILogger) ats.CandidateEmailService {
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		logger:      log,
	}
}

// SendBulkEmail sends one message per recipient over a single connection.
// A failed dial fails the whole batch; per-recipient failures are reported
// in the result.
func (s *emailService) SendBulkEmail(ctx context.Context, email ats.BulkEmail) (*ats.BulkEmailResult, error) {
	conn, err := s.dialer.Dial()
	if err != nil {
		s.logger.Error("MAILER", "Failed to connect to SMTP server", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	defer conn.Close()

	result := &ats.BulkEmailResult{Sent: []string{}, Failed: []string{}}
	body := renderBody(email.Body)

	for _, to := range email.Recipients {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, to)
			continue
		}

		m := gomail.NewMessage()
		m.SetAddressHeader("From", s.senderEmail, s.senderName)
		m.SetHeader("To", to)
		m.SetHeader("Subject", email.Subject)
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", body)

		if err := gomail.Send(conn, m); err != nil {
			s.logger.Warn("MAILER", "Failed to send email", map[string]interface{}{"to": to, "error": err.Error()})
			result.Failed = append(result.Failed, to)
			continue
		}
		result.Sent = append(result.Sent, to)
	}

	s.logger.Info("MAILER", "Bulk email finished", map[string]interface{}{
		"subject": email.Subject,
		"sent":    len(result.Sent),
		"failed":  len(result.Failed),
	})
	return result, nil
}

func renderBody(text string) string {
	lines := strings.Split(html.EscapeString(text), "\n")
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<p>%s</p>
		</div>
	`, strings.Join(lines, "<br>"))
}
