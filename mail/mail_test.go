package mail_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"hackathon-backend/mail"
)

type sent struct {
	to, subject, text string
}

type recorder struct {
	mu   sync.Mutex
	sent []sent
}

func (r *recorder) Send(_ context.Context, to, subject, text, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{to, subject, text})
	return nil
}

var _ = Describe("Mailer", func() {
	var (
		r *recorder
		m *mail.Mailer
	)

	BeforeEach(func() {
		r = &recorder{}
		m = mail.New(r, "https://hack.example.com")
	})

	Specify("verification email links to the frontend", func() {
		Expect(m.SendVerificationEmail(context.Background(), "a@example.com", "tok.en")).To(Succeed())
		Expect(r.sent).To(HaveLen(1))
		Expect(r.sent[0].to).To(Equal("a@example.com"))
		Expect(r.sent[0].text).To(ContainSubstring("https://hack.example.com/verify/tok.en"))
	})

	Specify("reset email links to the frontend", func() {
		Expect(m.SendPasswordResetEmail(context.Background(), "a@example.com", "tok.en")).To(Succeed())
		Expect(r.sent[0].text).To(ContainSubstring("https://hack.example.com/reset/tok.en"))
	})
})
