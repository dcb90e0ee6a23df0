// Package handler holds the HTTP controllers. Every controller reports failures as
// errs sentinels through middleware.ErrorResponse.
package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/events"
	"hackathon-backend/internal/background"
	"hackathon-backend/middleware"
	"hackathon-backend/store"
)

type userWithToken struct {
	*entity.User
	Token string `json:"token"`
}

// storeError maps a failed store call onto the error reported to the caller.
func storeError(c *gin.Context, err error, notFound error, fields ...zap.Field) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrInvalidID):
		return errs.ErrInvalidID
	}

	middleware.Logger(c).Error("database error", append(fields, zap.Error(err))...)
	return errs.ErrDatabase
}

// parseID reads the hex object id in the named path parameter.
func parseID(c *gin.Context, param string) (primitive.ObjectID, error) {
	id, err := store.ParseID(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, errs.ErrInvalidID
	}

	return id, nil
}

// parsePatch decodes an update body. Fields outside the patch type are rejected.
func parsePatch(c *gin.Context, v interface{}) error {
	d := json.NewDecoder(c.Request.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		middleware.Logger(c).Debug("invalid update", zap.Error(err))
		return errs.ErrInvalidUpdate
	}

	return nil
}

func publish(bg *background.Group, p events.Publisher, e *events.Event) {
	bg.Go("publish "+string(e.Type), func(ctx context.Context) error {
		return p.Publish(ctx, e)
	}, zap.String("subject", e.Subject))
}
