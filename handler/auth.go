package handler

import (
	"context"
	"errors"
	"net/http"
	netmail "net/mail"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/events"
	"hackathon-backend/internal/background"
	"hackathon-backend/jwt"
	"hackathon-backend/mail"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

type AuthHandler struct {
	store    *store.Store
	tokens   *jwt.Tokens
	mailer   *mail.Mailer
	events   events.Publisher
	bg       *background.Group
	settings *SettingsHandler
}

func NewAuthHandler(st *store.Store, tokens *jwt.Tokens, mailer *mail.Mailer, pub events.Publisher, bg *background.Group, settings *SettingsHandler) *AuthHandler {
	return &AuthHandler{
		store:    st,
		tokens:   tokens,
		mailer:   mailer,
		events:   pub,
		bg:       bg,
		settings: settings,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func validEmail(email string) bool {
	addr, err := netmail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (h *AuthHandler) respondWithToken(c *gin.Context, u *entity.User) {
	token, err := h.tokens.NewAuthToken(u.ID)
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrJWT)
		return
	}

	c.JSON(http.StatusOK, userWithToken{User: u, Token: token})
}

func (h *AuthHandler) Register(c *gin.Context) {
	req := &credentials{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	open, err := h.settings.IsRegistrationOpen(ctx)
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if !open {
		middleware.ErrorResponse(c, errs.ErrRegistrationClosed)
		return
	}

	if req.Email == "" {
		middleware.ErrorResponse(c, errs.ErrEmailRequired)
		return
	}
	if !validEmail(req.Email) {
		middleware.ErrorResponse(c, errs.ErrEmailAddressFormat)
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(c, errs.ErrPasswordRequired)
		return
	}
	if len(req.Password) < entity.MinPasswordLength {
		middleware.ErrorResponse(c, errs.ErrPasswordTooShort)
		return
	}
	if len(req.Password) > entity.MaxPasswordLength {
		middleware.ErrorResponse(c, errs.ErrPasswordTooLong)
		return
	}

	logger := middleware.Logger(c).With(zap.String("email", req.Email))

	_, err = h.store.Users.ByEmail(ctx, req.Email)
	if err == nil {
		middleware.ErrorResponse(c, errs.ErrAlreadyExists)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		logger.Error("database error", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrDatabase)
		return
	}

	hash, err := entity.GenerateHash(req.Password)
	if err != nil {
		logger.Error("bcrypt failure", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrCryptographic)
		return
	}

	u := &entity.User{
		Email:    req.Email,
		Password: hash,
	}
	err = h.store.Users.Create(ctx, u)
	if err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, store.ErrDuplicate) {
			middleware.ErrorResponse(c, errs.ErrAlreadyExists)
			return
		}

		logger.Error("database error", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrDatabase)
		return
	}

	err = h.store.Statuses.Create(ctx, &entity.Status{User: u.ID})
	if err != nil && !errors.Is(err, store.ErrDuplicate) {
		logger.Error("database error", zap.Error(err), zap.String("userID", u.ID.Hex()))
		middleware.ErrorResponse(c, errs.ErrDatabase)
		return
	}

	h.respondWithToken(c, u)

	email := u.Email
	h.bg.Go("send verification email", func(ctx context.Context) error {
		token, err := h.tokens.NewEmailVerificationToken(email)
		if err != nil {
			return err
		}

		return h.mailer.SendVerificationEmail(ctx, email, token)
	}, zap.String("email", email))
	publish(h.bg, h.events, events.New(events.UserRegistered, u.ID.Hex(), map[string]string{"email": email}))

	logger.Info("user registered", zap.String("userID", u.ID.Hex()))
}

// Login authenticates with the access token header when present, ignoring the
// body, and with email and password otherwise.
func (h *AuthHandler) Login(c *gin.Context) {
	if token := c.GetHeader(middleware.TokenHeader); token != "" {
		h.loginWithToken(c, token)
		return
	}

	req := &credentials{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(c, errs.ErrEmailRequired)
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(c, errs.ErrPasswordRequired)
		return
	}

	u, err := h.store.Users.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("email", req.Email)))
		return
	}

	if !u.CheckPassword(req.Password) {
		middleware.Logger(c).Debug("invalid password", zap.String("email", req.Email))
		middleware.ErrorResponse(c, errs.ErrIncorrectPassword)
		return
	}

	h.respondWithToken(c, u)
}

func (h *AuthHandler) loginWithToken(c *gin.Context, token string) {
	id, err := h.tokens.DecodeAuthToken(token)
	if err != nil {
		middleware.Logger(c).Debug("rejected access token", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrUnknownAccount)
		return
	}

	u, err := h.store.Users.ByID(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			middleware.Logger(c).Error("database error", zap.Error(err), zap.String("userID", id.Hex()))
		}

		middleware.ErrorResponse(c, errs.ErrUnknownAccount)
		return
	}

	c.JSON(http.StatusOK, userWithToken{User: u, Token: token})
}

// Verify marks the owner of the verification token as verified and echoes the token.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		middleware.ErrorResponse(c, errs.ErrTokenRequired)
		return
	}

	email, err := h.tokens.DecodeEmailVerificationToken(token)
	if err != nil {
		middleware.Logger(c).Debug("rejected verification token", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrBadToken)
		return
	}

	ctx := c.Request.Context()
	u, err := h.store.Users.ByEmail(ctx, email)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("email", email)))
		return
	}

	if err := h.store.Statuses.SetVerified(ctx, u.ID); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", u.ID.Hex())))
		return
	}

	publish(h.bg, h.events, events.New(events.UserVerified, u.ID.Hex(), nil))
	c.JSON(http.StatusOK, userWithToken{User: u, Token: token})
}

func (h *AuthHandler) ResendVerificationEmail(c *gin.Context) {
	req := &emailRequest{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(c, errs.ErrEmailRequired)
		return
	}

	ctx := c.Request.Context()
	u, err := h.store.Users.ByEmail(ctx, req.Email)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("email", req.Email)))
		return
	}

	s, err := h.store.Statuses.ByUser(ctx, u.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", u.ID.Hex())))
		return
	}
	if s != nil && s.Verified {
		middleware.ErrorResponse(c, errs.ErrAlreadyVerified)
		return
	}

	token, err := h.tokens.NewEmailVerificationToken(u.Email)
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrJWT)
		return
	}

	if err := h.mailer.SendVerificationEmail(ctx, u.Email, token); err != nil {
		middleware.Logger(c).Error("mail failure", zap.Error(err), zap.String("email", u.Email))
		middleware.ErrorResponse(c, errs.ErrMail)
		return
	}

	c.Status(http.StatusOK)
}

func (h *AuthHandler) SendPasswordResetEmail(c *gin.Context) {
	req := &emailRequest{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(c, errs.ErrEmailRequired)
		return
	}

	ctx := c.Request.Context()
	u, err := h.store.Users.ByEmail(ctx, req.Email)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("email", req.Email)))
		return
	}

	token, err := h.tokens.NewPasswordResetToken(u.Email)
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrJWT)
		return
	}

	if err := h.mailer.SendPasswordResetEmail(ctx, u.Email, token); err != nil {
		middleware.Logger(c).Error("mail failure", zap.Error(err), zap.String("email", u.Email))
		middleware.ErrorResponse(c, errs.ErrMail)
		return
	}

	c.Status(http.StatusOK)
}

// ResetPassword replaces the password of the reset token's owner and logs them in.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	req := &resetRequest{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if req.Token == "" {
		middleware.ErrorResponse(c, errs.ErrTokenRequired)
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(c, errs.ErrPasswordRequired)
		return
	}
	if len(req.Password) < entity.MinPasswordLength {
		middleware.ErrorResponse(c, errs.ErrPasswordTooShort)
		return
	}
	if len(req.Password) > entity.MaxPasswordLength {
		middleware.ErrorResponse(c, errs.ErrPasswordTooLong)
		return
	}

	email, err := h.tokens.DecodePasswordResetToken(req.Token)
	if err != nil {
		middleware.Logger(c).Debug("rejected reset token", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrBadToken)
		return
	}

	hash, err := entity.GenerateHash(req.Password)
	if err != nil {
		middleware.Logger(c).Error("bcrypt failure", zap.Error(err))
		middleware.ErrorResponse(c, errs.ErrCryptographic)
		return
	}

	u, err := h.store.Users.SetPassword(c.Request.Context(), email, hash)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("email", email)))
		return
	}

	middleware.Logger(c).Info("password reset", zap.String("userID", u.ID.Hex()))
	h.respondWithToken(c, u)
}
