// Package admin grants and revokes the admin flag. There is no HTTP route for
// this; operators run cmd/make-admin against the database.
package admin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/log"
	"hackathon-backend/store"
)

var ErrEmailRequired = errors.New("email is required")

// SetAdmin sets the admin flag of the user registered with email.
func SetAdmin(ctx context.Context, users store.Users, email string, admin bool) (*entity.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	u, err := users.SetAdmin(ctx, email, admin)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("no user registered with %s", email)
		}

		return nil, err
	}

	log.Logger.Info("admin flag changed", zap.String("userID", u.ID.Hex()), zap.String("email", email), zap.Bool("admin", admin))
	return u, nil
}
