package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/log"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

// EventHandler resolves the hackathon currently being run, identified by name.
type EventHandler struct {
	events store.Events
	name   string
}

func NewEventHandler(events store.Events, name string) *EventHandler {
	return &EventHandler{
		events: events,
		name:   name,
	}
}

// EnsureCurrentEvent creates the current event if it does not exist yet.
func (h *EventHandler) EnsureCurrentEvent(ctx context.Context) (*entity.Event, error) {
	e, err := h.events.ByName(ctx, h.name)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	e = &entity.Event{Name: h.name}
	err = h.events.Create(ctx, e)
	if errors.Is(err, store.ErrDuplicate) {
		return h.events.ByName(ctx, h.name)
	}
	if err != nil {
		return nil, err
	}

	log.Logger.Info("event created", zap.String("name", h.name), zap.String("eventID", e.ID.Hex()))
	return e, nil
}

func (h *EventHandler) Current(ctx context.Context) (*entity.Event, error) {
	e, err := h.events.ByName(ctx, h.name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Logger.Error("current event missing", zap.String("name", h.name))
			return nil, errs.ErrNoEvent
		}

		log.Logger.Error("database error", zap.Error(err))
		return nil, errs.ErrDatabase
	}

	return e, nil
}

func (h *EventHandler) GetCurrent(c *gin.Context) {
	e, err := h.Current(c.Request.Context())
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}
