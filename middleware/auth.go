package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/errs"
	"hackathon-backend/jwt"
	"hackathon-backend/store"
)

const (
	TokenHeader = "x-access-token"

	userKey = "user"
)

// Auth resolves the caller from the access token and guards routes with access predicates.
type Auth struct {
	tokens *jwt.Tokens
	store  *store.Store
}

func NewAuth(tokens *jwt.Tokens, st *store.Store) *Auth {
	return &Auth{
		tokens: tokens,
		store:  st,
	}
}

// User returns the caller resolved by one of the Auth gates.
func User(c *gin.Context) *entity.User {
	return c.MustGet(userKey).(*entity.User)
}

func (a *Auth) resolve(c *gin.Context) (*entity.User, error) {
	token := c.GetHeader(TokenHeader)
	if token == "" {
		return nil, errs.ErrMissingAccessToken
	}

	id, err := a.tokens.DecodeAuthToken(token)
	if err != nil {
		Logger(c).Debug("rejected access token", zap.Error(err))
		return nil, errs.ErrUnauthorized
	}

	u, err := a.store.Users.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.ErrUnauthorized
		}

		Logger(c).Error("database error", zap.Error(err), zap.String("userID", id.Hex()))
		return nil, errs.ErrDatabase
	}

	return u, nil
}

type predicate func(c *gin.Context, u *entity.User) (bool, error)

func (a *Auth) gate(allow predicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := a.resolve(c)
		if err != nil {
			ErrorResponse(c, err)
			return
		}
		c.Set(userKey, u)

		ok, err := allow(c, u)
		if err != nil {
			ErrorResponse(c, err)
			return
		}
		if !ok {
			Logger(c).Debug("access denied", zap.String("userID", u.ID.Hex()), zap.String("path", c.FullPath()))
			ErrorResponse(c, errs.ErrUnauthorized)
			return
		}

		c.Next()
	}
}

func (a *Auth) Authenticated() gin.HandlerFunc {
	return a.gate(func(*gin.Context, *entity.User) (bool, error) {
		return true, nil
	})
}

func (a *Auth) Admin() gin.HandlerFunc {
	return a.gate(func(_ *gin.Context, u *entity.User) (bool, error) {
		return u.Admin, nil
	})
}

// OwnerOrAdmin admits the user named by the :id parameter, and admins.
func (a *Auth) OwnerOrAdmin() gin.HandlerFunc {
	return a.gate(func(c *gin.Context, u *entity.User) (bool, error) {
		return u.Admin || c.Param("id") == u.ID.Hex(), nil
	})
}

// ProjectOwnerOrAdmin admits members of the team that owns project :id, and admins.
func (a *Auth) ProjectOwnerOrAdmin() gin.HandlerFunc {
	return a.gate(func(c *gin.Context, u *entity.User) (bool, error) {
		if u.Admin {
			return true, nil
		}

		id, err := store.ParseID(c.Param("id"))
		if err != nil {
			return false, errs.ErrInvalidID
		}

		ctx := c.Request.Context()
		p, err := a.store.Projects.ByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return false, nil
			}

			Logger(c).Error("database error", zap.Error(err), zap.String("projectID", id.Hex()))
			return false, errs.ErrDatabase
		}

		t, err := a.store.Teams.ByID(ctx, p.Team)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return false, nil
			}

			Logger(c).Error("database error", zap.Error(err), zap.String("teamID", p.Team.Hex()))
			return false, errs.ErrDatabase
		}

		return t.HasMember(u.ID), nil
	})
}

// CanCheckIn admits admins, and users checking themselves into an item that allows it.
func (a *Auth) CanCheckIn() gin.HandlerFunc {
	return a.gate(func(c *gin.Context, u *entity.User) (bool, error) {
		itemID, userID := c.Query("checkInItemID"), c.Query("userID")
		if itemID == "" || userID == "" {
			return false, errs.ErrCheckinParamsRequired
		}
		if u.Admin {
			return true, nil
		}
		if userID != u.ID.Hex() {
			return false, nil
		}

		id, err := store.ParseID(itemID)
		if err != nil {
			return false, errs.ErrInvalidID
		}

		item, err := a.store.Checkins.ItemByID(c.Request.Context(), id)
		if err != nil {
			// an unknown item never allows self check-in
			if errors.Is(err, store.ErrNotFound) {
				return false, nil
			}

			Logger(c).Error("database error", zap.Error(err), zap.String("itemID", itemID))
			return false, errs.ErrDatabase
		}

		return item.EnableSelfCheckin, nil
	})
}
