package utils

import (
	"context"
	"fmt"
	"html"

	"aicareer/config"
	"aicareer/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional emails.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, email, name string) error
}

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
	log    *logger.Logger
}

// NewMailer returns a SendGrid mailer, or a no-op mailer when no API key is
// configured.
func NewMailer(cfg *config.Config, log *logger.Logger) Mailer {
	if cfg.SendgridAPIKey == "" {
		log.Warn("SENDGRID_API_KEY not set, emails are disabled")
		return NopMailer{}
	}
	return &SendgridMailer{
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
		from:   mail.NewEmail("AI Career Guide", cfg.EmailSender),
		log:    log.With("component", "mailer"),
	}
}

func (m *SendgridMailer) send(ctx context.Context, toEmail, toName, subject, title, body string) error {
	msg := mail.NewSingleEmail(m.from, subject, mail.NewEmail(toName, toEmail), title, getEmailTemplate(title, body))
	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	m.log.Info("Email sent", "to", toEmail, "subject", subject)
	return nil
}

// SendWelcomeEmail greets a newly registered learner.
func (m *SendgridMailer) SendWelcomeEmail(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your account is ready. Pick a learning stack, finish the daily tasks and let the AI reviewer check your code.</p>
		<div class="info-box">Every approved task earns points on your profile.</div>`, html.EscapeString(name))
	return m.send(ctx, email, name, "Welcome to AI Career Guide", "Welcome aboard!", body)
}

// NopMailer drops every email.
type NopMailer struct{}

func (NopMailer) SendWelcomeEmail(context.Context, string, string) error { return nil }

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1E293B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; }
			.content { padding: 40px 30px; color: #1E293B; line-height: 1.6; }
			.info-box { background: #EEF2FF; padding: 15px; border-radius: 4px; border-left: 4px solid #6366F1; margin: 20px 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>AI CAREER GUIDE</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">You received this email because you signed up for AI Career Guide.</div>
		</div>
	</body>
	</html>
	`, html.EscapeString(title), bodyContent)
}
