package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/events"
	"hackathon-backend/internal/background"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

type UserHandler struct {
	store    *store.Store
	events   events.Publisher
	bg       *background.Group
	settings *SettingsHandler
}

func NewUserHandler(st *store.Store, pub events.Publisher, bg *background.Group, settings *SettingsHandler) *UserHandler {
	return &UserHandler{
		store:    st,
		events:   pub,
		bg:       bg,
		settings: settings,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.Users.List(c.Request.Context())
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNotFound))
		return
	}

	out := make([]entity.Public, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}

	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	u, err := h.store.Users.ByID(c.Request.Context(), id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, u.Public())
}

func (h *UserHandler) Team(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	t, err := h.store.Teams.ByMember(c.Request.Context(), id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNoTeam, zap.String("userID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *UserHandler) Status(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	s, err := h.store.Statuses.ByUser(c.Request.Context(), id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", id.Hex())))
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *UserHandler) Admit(c *gin.Context) {
	h.setAdmitted(c, true)
}

func (h *UserHandler) Reject(c *gin.Context) {
	h.setAdmitted(c, false)
}

func (h *UserHandler) setAdmitted(c *gin.Context, admitted bool) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	logger := middleware.Logger(c).With(zap.String("userID", id.Hex()))

	if _, err := h.store.Users.ByID(ctx, id); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", id.Hex())))
		return
	}

	admin := middleware.User(c)
	s, err := h.store.Statuses.SetAdmitted(ctx, id, admin.ID, admitted)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", id.Hex())))
		return
	}

	logger.Info("admission decided", zap.Bool("admitted", admitted), zap.String("admitterID", admin.ID.Hex()))
	publish(h.bg, h.events, events.New(events.UserAdmission, id.Hex(), map[string]string{
		"admitted":   strconv.FormatBool(admitted),
		"admittedBy": admin.ID.Hex(),
	}))

	c.JSON(http.StatusOK, s)
}

// Confirm records that an admitted user will attend. Only possible while the
// confirmation window is open.
func (h *UserHandler) Confirm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	open, err := h.settings.IsConfirmationOpen(ctx)
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if !open {
		middleware.ErrorResponse(c, errs.ErrConfirmationClosed)
		return
	}

	s, err := h.store.Statuses.ByUser(ctx, id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", id.Hex())))
		return
	}
	if !s.IsAdmitted() {
		middleware.ErrorResponse(c, errs.ErrNotAdmitted)
		return
	}

	s, err = h.store.Statuses.SetConfirmed(ctx, id)
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", id.Hex())))
		return
	}

	publish(h.bg, h.events, events.New(events.UserConfirmed, id.Hex(), nil))
	c.JSON(http.StatusOK, s)
}
