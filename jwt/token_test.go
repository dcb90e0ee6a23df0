package jwt_test

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/jwt"
)

var _ = Describe("Tokens", func() {
	var tokens *jwt.Tokens

	BeforeEach(func() {
		tokens = jwt.New([]byte("auth-key"), []byte("verify-key"), []byte("reset-key"))
	})

	Describe("auth token", func() {
		Specify("round trip", func() {
			id := primitive.NewObjectID()
			token, err := tokens.NewAuthToken(id)
			Expect(err).To(BeNil())
			Expect(token).NotTo(BeEmpty())

			decoded, err := tokens.DecodeAuthToken(token)
			Expect(err).To(BeNil())
			Expect(decoded).To(Equal(id))
		})
		Specify("carries the user id claim", func() {
			id := primitive.NewObjectID()
			token, err := tokens.NewAuthToken(id)
			Expect(err).To(BeNil())

			t, err := jwtlib.ParseWithClaims(token, &jwt.AuthClaims{}, func(*jwtlib.Token) (interface{}, error) {
				return []byte("auth-key"), nil
			})
			Expect(err).To(BeNil())
			c, ok := t.Claims.(*jwt.AuthClaims)
			Expect(ok).To(BeTrue())
			Expect(c.UserID).To(Equal(id.Hex()))
			Expect(c.ExpiresAt.Time).To(BeTemporally(">", time.Now()))
		})
		Specify("sad path - signed with another key", func() {
			other := jwt.New([]byte("other"), []byte("verify-key"), []byte("reset-key"))
			token, err := other.NewAuthToken(primitive.NewObjectID())
			Expect(err).To(BeNil())

			_, err = tokens.DecodeAuthToken(token)
			Expect(err).To(Equal(jwt.ErrInvalidToken))
		})
		Specify("sad path - tampered", func() {
			token, err := tokens.NewAuthToken(primitive.NewObjectID())
			Expect(err).To(BeNil())

			_, err = tokens.DecodeAuthToken(token[:len(token)-2] + "xx")
			Expect(err).To(Equal(jwt.ErrInvalidToken))
		})
	})

	Describe("email tokens", func() {
		Specify("verification round trip", func() {
			token, err := tokens.NewEmailVerificationToken("hacker@example.com")
			Expect(err).To(BeNil())

			email, err := tokens.DecodeEmailVerificationToken(token)
			Expect(err).To(BeNil())
			Expect(email).To(Equal("hacker@example.com"))
		})
		Specify("password reset round trip", func() {
			token, err := tokens.NewPasswordResetToken("hacker@example.com")
			Expect(err).To(BeNil())

			email, err := tokens.DecodePasswordResetToken(token)
			Expect(err).To(BeNil())
			Expect(email).To(Equal("hacker@example.com"))
		})
		Specify("sad path - a verification token is not a reset token", func() {
			same := jwt.New([]byte("k"), []byte("k"), []byte("k"))
			token, err := same.NewEmailVerificationToken("hacker@example.com")
			Expect(err).To(BeNil())

			_, err = same.DecodePasswordResetToken(token)
			Expect(err).To(Equal(jwt.ErrInvalidToken))
		})
		Specify("sad path - an auth token is not a verification token", func() {
			same := jwt.New([]byte("k"), []byte("k"), []byte("k"))
			token, err := same.NewAuthToken(primitive.NewObjectID())
			Expect(err).To(BeNil())

			_, err = same.DecodeEmailVerificationToken(token)
			Expect(err).To(Equal(jwt.ErrInvalidToken))
		})
	})

	Describe("expiry", func() {
		Specify("sad path - expired reset token", func() {
			issued := time.Now().Add(-2 * jwt.PasswordResetTokenTTL)
			old := jwt.NewAt([]byte("auth-key"), []byte("verify-key"), []byte("reset-key"), func() time.Time { return issued })
			token, err := old.NewPasswordResetToken("hacker@example.com")
			Expect(err).To(BeNil())

			_, err = tokens.DecodePasswordResetToken(token)
			Expect(err).To(Equal(jwt.ErrExpired))
		})
	})

	table.DescribeTable("garbage never decodes",
		func(garbage string) {
			Expect(func() {
				_, err := tokens.DecodeAuthToken(garbage)
				Expect(err).NotTo(BeNil())
				_, err = tokens.DecodeEmailVerificationToken(garbage)
				Expect(err).NotTo(BeNil())
				_, err = tokens.DecodePasswordResetToken(garbage)
				Expect(err).NotTo(BeNil())
			}).NotTo(Panic())
		},
		table.Entry("empty", ""),
		table.Entry("short", "abc"),
		table.Entry("three dots", "..."),
		table.Entry("not base64", "a.b.c"),
		table.Entry("unsigned", "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VyX2lkIjoiMSJ9."),
	)
})
