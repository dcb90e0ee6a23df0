package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"hackathon-backend/log"
)

const (
	issuer = "hackathon-backend"

	subjectAuth              = "auth"
	subjectEmailVerification = "email-verification"
	subjectPasswordReset     = "password-reset"

	AuthTokenTTL              = time.Hour * 24 * 30
	EmailVerificationTokenTTL = time.Hour * 24 * 7
	PasswordResetTokenTTL     = time.Hour
)

var (
	ErrExpired      = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type AuthClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type EmailClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and decodes the three token kinds. Every kind is signed with its
// own key and carries its own subject, so a token of one kind never decodes as another.
type Tokens struct {
	authKey         []byte
	verificationKey []byte
	resetKey        []byte

	now func() time.Time
}

func New(authKey, verificationKey, resetKey []byte) *Tokens {
	return NewAt(authKey, verificationKey, resetKey, time.Now)
}

// NewAt is New with a custom clock.
func NewAt(authKey, verificationKey, resetKey []byte, now func() time.Time) *Tokens {
	return &Tokens{
		authKey:         authKey,
		verificationKey: verificationKey,
		resetKey:        resetKey,
		now:             now,
	}
}

func (t *Tokens) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := t.now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func sign(claims jwt.Claims, key []byte) (string, error) {
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(key)
	if err != nil {
		log.Logger.Error("signing failure", zap.Error(err))
		return "", err
	}

	return ss, nil
}

func (t *Tokens) parse(token string, claims jwt.Claims, key []byte) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		log.Logger.Debug("parse failure", zap.Error(err))
		return ErrInvalidToken
	}

	return nil
}

func (t *Tokens) check(c *jwt.RegisteredClaims, subject string) error {
	if c.Subject != subject || c.Issuer != issuer {
		return ErrInvalidToken
	}
	if c.ExpiresAt == nil || !t.now().Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	return nil
}

func (t *Tokens) NewAuthToken(userID primitive.ObjectID) (string, error) {
	return sign(&AuthClaims{
		UserID:           userID.Hex(),
		RegisteredClaims: t.registered(subjectAuth, AuthTokenTTL),
	}, t.authKey)
}

// DecodeAuthToken returns the id of the user the token was issued to.
func (t *Tokens) DecodeAuthToken(token string) (primitive.ObjectID, error) {
	c := &AuthClaims{}
	if err := t.parse(token, c, t.authKey); err != nil {
		return primitive.NilObjectID, err
	}
	if err := t.check(&c.RegisteredClaims, subjectAuth); err != nil {
		return primitive.NilObjectID, err
	}

	id, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}

	return id, nil
}

func (t *Tokens) NewEmailVerificationToken(email string) (string, error) {
	return sign(&EmailClaims{
		Email:            email,
		RegisteredClaims: t.registered(subjectEmailVerification, EmailVerificationTokenTTL),
	}, t.verificationKey)
}

func (t *Tokens) DecodeEmailVerificationToken(token string) (string, error) {
	return t.decodeEmail(token, t.verificationKey, subjectEmailVerification)
}

func (t *Tokens) NewPasswordResetToken(email string) (string, error) {
	return sign(&EmailClaims{
		Email:            email,
		RegisteredClaims: t.registered(subjectPasswordReset, PasswordResetTokenTTL),
	}, t.resetKey)
}

func (t *Tokens) DecodePasswordResetToken(token string) (string, error) {
	return t.decodeEmail(token, t.resetKey, subjectPasswordReset)
}

func (t *Tokens) decodeEmail(token string, key []byte, subject string) (string, error) {
	c := &EmailClaims{}
	if err := t.parse(token, c, key); err != nil {
		return "", err
	}
	if err := t.check(&c.RegisteredClaims, subject); err != nil {
		return "", err
	}
	if c.Email == "" {
		return "", ErrInvalidToken
	}

	return c.Email, nil
}
