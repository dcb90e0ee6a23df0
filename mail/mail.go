package mail

import (
	"context"
	"fmt"
	"net/url"
)

type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailer composes the application's emails and hands them to a Sender.
type Mailer struct {
	sender      Sender
	frontendURL string
}

func New(sender Sender, frontendURL string) *Mailer {
	return &Mailer{
		sender:      sender,
		frontendURL: frontendURL,
	}
}

func (m *Mailer) link(path, token string) string {
	return fmt.Sprintf("%s/%s/%s", m.frontendURL, path, url.PathEscape(token))
}

func (m *Mailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	link := m.link("verify", token)
	text := fmt.Sprintf("Welcome! Confirm your email address by opening this link:\n\n%s\n", link)
	html := fmt.Sprintf(`<p>Welcome!</p><p><a href="%s">Confirm your email address</a></p>`, link)

	return m.sender.Send(ctx, email, "Verify your email", text, html)
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	link := m.link("reset", token)
	text := fmt.Sprintf("Someone asked to reset your password. If it was you, open this link:\n\n%s\n\nThe link expires in one hour.\n", link)
	html := fmt.Sprintf(`<p>Someone asked to reset your password.</p><p><a href="%s">Reset your password</a></p><p>The link expires in one hour.</p>`, link)

	return m.sender.Send(ctx, email, "Reset your password", text, html)
}
