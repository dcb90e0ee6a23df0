package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/events"
)

var _ = Describe("Auth", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	credentials := func(email, password string) map[string]string {
		return map[string]string{"email": email, "password": password}
	}

	Describe("register", func() {
		Specify("happy path", func() {
			w := h.do(http.MethodPost, "/auth/register", "", credentials("a@example.com", "secret1"))
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decode(w)
			Expect(body["email"]).To(Equal("a@example.com"))
			Expect(body["token"]).NotTo(BeEmpty())
			Expect(body).NotTo(HaveKey("password"))

			id, err := h.tokens.DecodeAuthToken(body["token"].(string))
			Expect(err).To(BeNil())
			Expect(id.Hex()).To(Equal(body["_id"]))

			s, err := h.store.Statuses.ByUser(context.Background(), id)
			Expect(err).To(BeNil())
			Expect(s.Verified).To(BeFalse())

			h.wait()
			sent := h.mail.To("a@example.com")
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].text).To(ContainSubstring("https://hack.example.com/verify/"))
			Expect(h.events.Types()).To(ContainElement(events.UserRegistered))
		})

		Specify("happy path - the response does not wait for the email", func() {
			held, release := h.mail.holdSends()

			responses := make(chan *httptest.ResponseRecorder, 1)
			go func() {
				defer GinkgoRecover()
				responses <- h.do(http.MethodPost, "/auth/register", "", credentials("a@example.com", "secret1"))
			}()

			var w *httptest.ResponseRecorder
			Eventually(responses).Should(Receive(&w))
			Expect(w.Code).To(Equal(http.StatusOK))

			Eventually(held).Should(Receive())
			Expect(h.mail.To("a@example.com")).To(BeEmpty())

			release()
			h.wait()
			Expect(h.mail.To("a@example.com")).To(HaveLen(1))
		})

		Specify("happy path - the password is stored hashed", func() {
			u, _ := h.register("a@example.com", "secret1")
			Expect(u.Password).NotTo(Equal("secret1"))
			Expect(u.CheckPassword("secret1")).To(BeTrue())
		})

		Specify("sad path - email already registered", func() {
			h.register("a@example.com", "secret1")

			w := h.do(http.MethodPost, "/auth/register", "", credentials("a@example.com", "secret2"))
			Expect(w).To(MatchBackendError(errs.ErrAlreadyExists))
			Expect(h.db.CountUsers("a@example.com")).To(Equal(1))
		})

		Specify("sad path - registration closed", func() {
			past := time.Now().Add(-time.Hour)
			_, err := h.store.Settings.Update(context.Background(), &entity.SettingsPatch{TimeClose: &past})
			Expect(err).To(BeNil())

			w := h.do(http.MethodPost, "/auth/register", "", credentials("a@example.com", "secret1"))
			Expect(w).To(MatchBackendError(errs.ErrRegistrationClosed))
			Expect(h.db.CountUsers("a@example.com")).To(Equal(0))
		})

		Specify("sad path - registration not open yet", func() {
			future := time.Now().Add(time.Hour)
			_, err := h.store.Settings.Update(context.Background(), &entity.SettingsPatch{TimeOpen: &future})
			Expect(err).To(BeNil())

			w := h.do(http.MethodPost, "/auth/register", "", credentials("a@example.com", "secret1"))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		Specify("sad path - malformed email", func() {
			w := h.do(http.MethodPost, "/auth/register", "", credentials("not-an-email", "secret1"))
			Expect(w).To(MatchBackendError(errs.ErrEmailAddressFormat))
		})

		Specify("sad path - short password", func() {
			w := h.do(http.MethodPost, "/auth/register", "", credentials("a@example.com", "12345"))
			Expect(w).To(MatchBackendError(errs.ErrPasswordTooShort))
			Expect(h.db.CountUsers("a@example.com")).To(Equal(0))
		})

		Specify("sad path - password longer than bcrypt accepts", func() {
			w := h.do(http.MethodPost, "/auth/register", "", credentials("long@example.com", strings.Repeat("a", 73)))
			Expect(w).To(MatchBackendError(errs.ErrPasswordTooLong))
			Expect(h.db.CountUsers("long@example.com")).To(Equal(0))
		})

		Specify("happy path - 72 byte password", func() {
			h.register("long@example.com", strings.Repeat("a", 72))
		})

		Specify("sad path - malformed body", func() {
			w := h.do(http.MethodPost, "/auth/register", "", "{")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Bad Request"))
		})
	})

	Describe("login", func() {
		var (
			user  *entity.User
			token string
		)

		BeforeEach(func() {
			user, token = h.register("a@example.com", "secret1")
		})

		Specify("happy path - credentials", func() {
			w := h.do(http.MethodPost, "/auth/login", "", credentials("a@example.com", "secret1"))
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decode(w)
			Expect(body["_id"]).To(Equal(user.ID.Hex()))
			Expect(body["token"]).NotTo(BeEmpty())
			Expect(body).NotTo(HaveKey("password"))
		})

		Specify("happy path - token wins over the body", func() {
			w := h.do(http.MethodPost, "/auth/login", token, credentials("a@example.com", "wrong password"))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["_id"]).To(Equal(user.ID.Hex()))
		})

		Specify("sad path - invalid token with valid credentials", func() {
			w := h.do(http.MethodPost, "/auth/login", "garbage", credentials("a@example.com", "secret1"))
			Expect(w).To(MatchBackendError(errs.ErrUnknownAccount))
		})

		Specify("sad path - wrong password", func() {
			w := h.do(http.MethodPost, "/auth/login", "", credentials("a@example.com", "secret2"))
			Expect(w).To(MatchBackendError(errs.ErrIncorrectPassword))
		})

		Specify("sad path - unknown email", func() {
			w := h.do(http.MethodPost, "/auth/login", "", credentials("b@example.com", "secret1"))
			Expect(w).To(MatchBackendError(errs.ErrUserNotFound))
		})

		Specify("sad path - missing password", func() {
			w := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@example.com"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("verify", func() {
		var user *entity.User

		BeforeEach(func() {
			user, _ = h.register("a@example.com", "secret1")
		})

		Specify("happy path", func() {
			token, err := h.tokens.NewEmailVerificationToken("a@example.com")
			Expect(err).To(BeNil())

			w := h.do(http.MethodGet, "/auth/verify/"+token, "", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			body := decode(w)
			Expect(body["_id"]).To(Equal(user.ID.Hex()))
			Expect(body["token"]).To(Equal(token))

			s, err := h.store.Statuses.ByUser(context.Background(), user.ID)
			Expect(err).To(BeNil())
			Expect(s.Verified).To(BeTrue())

			h.wait()
			Expect(h.events.Types()).To(ContainElement(events.UserVerified))
		})

		Specify("sad path - garbage token", func() {
			w := h.do(http.MethodGet, "/auth/verify/garbage", "", nil)
			Expect(w).To(MatchBackendError(errs.ErrBadToken))
		})

		Specify("sad path - reset token", func() {
			token, err := h.tokens.NewPasswordResetToken("a@example.com")
			Expect(err).To(BeNil())

			w := h.do(http.MethodGet, "/auth/verify/"+token, "", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		Specify("sad path - unknown user", func() {
			token, err := h.tokens.NewEmailVerificationToken("b@example.com")
			Expect(err).To(BeNil())

			w := h.do(http.MethodGet, "/auth/verify/"+token, "", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("resend verification", func() {
		var user *entity.User

		BeforeEach(func() {
			user, _ = h.register("a@example.com", "secret1")
			h.wait()
		})

		Specify("happy path", func() {
			w := h.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": "a@example.com"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.Len()).To(BeZero())
			Expect(h.mail.To("a@example.com")).To(HaveLen(2))
		})

		Specify("sad path - already verified", func() {
			Expect(h.store.Statuses.SetVerified(context.Background(), user.ID)).To(Succeed())

			w := h.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": "a@example.com"})
			Expect(w).To(MatchBackendError(errs.ErrAlreadyVerified))
			Expect(h.mail.To("a@example.com")).To(HaveLen(1))
		})

		Specify("sad path - unknown user", func() {
			w := h.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{"email": "b@example.com"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		Specify("sad path - missing email", func() {
			w := h.do(http.MethodPost, "/auth/resend-verification", "", map[string]string{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("password reset", func() {
		BeforeEach(func() {
			h.register("a@example.com", "secret1")
			h.wait()
		})

		Specify("happy path - send email", func() {
			w := h.do(http.MethodPost, "/auth/send-reset-email", "", map[string]string{"email": "a@example.com"})
			Expect(w.Code).To(Equal(http.StatusOK))

			sent := h.mail.To("a@example.com")
			Expect(sent).To(HaveLen(2))
			Expect(sent[1].text).To(ContainSubstring("https://hack.example.com/reset/"))
		})

		Specify("sad path - send email to unknown user", func() {
			w := h.do(http.MethodPost, "/auth/send-reset-email", "", map[string]string{"email": "b@example.com"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		Specify("happy path - reset", func() {
			token, err := h.tokens.NewPasswordResetToken("a@example.com")
			Expect(err).To(BeNil())

			w := h.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "password": "newsecret"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["token"]).NotTo(BeEmpty())

			Expect(h.do(http.MethodPost, "/auth/login", "", credentials("a@example.com", "secret1")).Code).To(Equal(http.StatusBadRequest))
			Expect(h.do(http.MethodPost, "/auth/login", "", credentials("a@example.com", "newsecret")).Code).To(Equal(http.StatusOK))
		})

		Specify("sad path - garbage token", func() {
			w := h.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"token": "garbage", "password": "newsecret"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		Specify("sad path - short password", func() {
			token, err := h.tokens.NewPasswordResetToken("a@example.com")
			Expect(err).To(BeNil())

			w := h.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "password": "123"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		Specify("sad path - password longer than bcrypt accepts", func() {
			token, err := h.tokens.NewPasswordResetToken("a@example.com")
			Expect(err).To(BeNil())

			w := h.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "password": strings.Repeat("a", 73)})
			Expect(w).To(MatchBackendError(errs.ErrPasswordTooLong))
			Expect(h.do(http.MethodPost, "/auth/login", "", credentials("a@example.com", "secret1")).Code).To(Equal(http.StatusOK))
		})

		Specify("sad path - unknown user", func() {
			token, err := h.tokens.NewPasswordResetToken("b@example.com")
			Expect(err).To(BeNil())

			w := h.do(http.MethodPost, "/auth/reset-password", "", map[string]string{"token": token, "password": "newsecret"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
