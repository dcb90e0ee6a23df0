package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/events"
	"hackathon-backend/internal/background"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

type CheckinHandler struct {
	store  *store.Store
	events events.Publisher
	bg     *background.Group
	event  *EventHandler
}

func NewCheckinHandler(st *store.Store, pub events.Publisher, bg *background.Group, event *EventHandler) *CheckinHandler {
	return &CheckinHandler{
		store:  st,
		events: pub,
		bg:     bg,
		event:  event,
	}
}

type checkinItemRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Points            int    `json:"points"`
	EnableSelfCheckin bool   `json:"enableSelfCheckin"`
}

// CheckIn records ?userID= as checked in to ?checkInItemID=. Access and the
// presence of both parameters are enforced by middleware.Auth.CanCheckIn.
func (h *CheckinHandler) CheckIn(c *gin.Context) {
	itemID, err := store.ParseID(c.Query("checkInItemID"))
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrInvalidID)
		return
	}
	userID, err := store.ParseID(c.Query("userID"))
	if err != nil {
		middleware.ErrorResponse(c, errs.ErrInvalidID)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.Checkins.ItemByID(ctx, itemID); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrCheckinItemNotFound, zap.String("itemID", itemID.Hex())))
		return
	}
	if _, err := h.store.Users.ByID(ctx, userID); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrUserNotFound, zap.String("userID", userID.Hex())))
		return
	}

	by := middleware.User(c)
	r := &entity.CheckinRecord{
		User:        userID,
		Item:        itemID,
		CheckedInBy: by.ID,
		Time:        time.Now().UTC(),
	}
	err = h.store.Checkins.Record(ctx, r)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.ErrorResponse(c, errs.ErrAlreadyCheckedIn)
			return
		}

		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNotFound, zap.String("userID", userID.Hex())))
		return
	}

	publish(h.bg, h.events, events.New(events.CheckedIn, userID.Hex(), map[string]string{
		"item":        itemID.Hex(),
		"checkedInBy": by.ID.Hex(),
	}))
	c.JSON(http.StatusOK, r)
}

func (h *CheckinHandler) Items(c *gin.Context) {
	items, err := h.store.Checkins.Items(c.Request.Context())
	if err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *CheckinHandler) CreateItem(c *gin.Context) {
	req := &checkinItemRequest{}
	if err := middleware.ParseJSONBody(c, req); err != nil {
		middleware.ErrorResponse(c, err)
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(c, errs.ErrNameRequired)
		return
	}

	ctx := c.Request.Context()
	event, err := h.event.Current(ctx)
	if err != nil {
		middleware.ErrorResponse(c, err)
		return
	}

	item := &entity.CheckinItem{
		Event:             event.ID,
		Name:              req.Name,
		Description:       req.Description,
		Points:            req.Points,
		EnableSelfCheckin: req.EnableSelfCheckin,
	}
	if err := h.store.Checkins.CreateItem(ctx, item); err != nil {
		middleware.ErrorResponse(c, storeError(c, err, errs.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, item)
}
