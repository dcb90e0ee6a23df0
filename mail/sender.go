package mail

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
	"hackathon-backend/log"
)

type mailgunSender struct {
	mg   mailgun.Mailgun
	from string
}

func NewMailgunSender(domain, apiKey, from string) Sender {
	return &mailgunSender{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

func (s *mailgunSender) Send(ctx context.Context, to, subject, text, html string) error {
	m := s.mg.NewMessage(s.from, subject, text, to)
	m.SetHtml(html)

	_, id, err := s.mg.Send(ctx, m)
	if err != nil {
		return err
	}

	log.Logger.Debug("mail sent", zap.String("id", id), zap.String("subject", subject))
	return nil
}

type logSender struct{}

// NewLogSender returns a Sender that only logs, for environments without mailgun.
func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(_ context.Context, to, subject, text, _ string) error {
	log.Logger.Info("mail not sent, no mail provider configured",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("text", text),
	)
	return nil
}
