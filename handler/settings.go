package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/log"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

// SettingsHandler owns the settings singleton. It is read from the store on
// every call, so updates apply to the next request.
type SettingsHandler struct {
	settings store.Settings
	now      func() time.Time
}

func NewSettingsHandler(settings store.Settings) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		now:      time.Now,
	}
}

func (h *SettingsHandler) GetInstance(ctx context.Context) (*entity.Settings, error) {
	s, err := h.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.ErrSettingsNotInitialized
		}

		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return s, nil
}

func (h *SettingsHandler) IsRegistrationOpen(ctx context.Context) (bool, error) {
	s, err := h.GetInstance(ctx)
	if err != nil {
		return false, err
	}

	return s.IsRegistrationOpen(h.now()), nil
}

func (h *SettingsHandler) IsConfirmationOpen(ctx context.Context) (bool, error) {
	s, err := h.GetInstance(ctx)
	if err != nil {
		return false, err
	}

	return s.IsConfirmationOpen(h.now()), nil
}

// CreateSingleton stores the settings template unless settings already exist.
func (h *SettingsHandler) CreateSingleton(ctx context.Context) error {
	_, err := h.settings.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	s, err := entity.SettingsFromTemplate()
	if err != nil {
		return err
	}

	err = h.settings.Create(ctx, s)
	if err != nil && !errors.Is(err, store.ErrDuplicate) {
		return err
	}

	log.Logger.Info("settings initialized")
	return nil
}

func (h *SettingsHandler) UpdateSettings(ctx context.Context, p *entity.SettingsPatch) (*entity.Settings, error) {
	if p.Empty() || !p.Valid() {
		return nil, errs.ErrInvalidUpdate
	}

	current, err := h.GetInstance(ctx)
	if err != nil {
		return nil, err
	}
	p.Apply(current)
	if before(current.TimeClose, current.TimeOpen) || before(current.TimeConfirm, current.TimeOpen) {
		return nil, errs.ErrInvalidTime
	}

	s, err := h.settings.Update(ctx, p)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.ErrSettingsNotInitialized
		}

		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return s, nil
}

func before(a, b *time.Time) bool {
	return a != nil && b != nil && a.Before(*b)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.GetInstance(c.Request.Context())
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	p := &entity.SettingsPatch{}
	if err := parsePatch(c, p); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	s, err := h.UpdateSettings(c.Request.Context(), p)
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	middleware.Logger(c).Info("settings updated", zap.String("userID", middleware.User(c).ID.Hex()))
	c.JSON(http.StatusOK, s)
}
