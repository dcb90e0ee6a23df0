// Package store declares the persistence layer used by the handlers. Every
// implementation reports failures with the typed errors below, so callers never
// inspect driver errors.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrInvalidID = errors.New("store: invalid id")
	ErrDuplicate = errors.New("store: duplicate key")
)

// ParseID converts a hex string to an object id, returning ErrInvalidID when it is malformed.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}

	return id, nil
}

type Users interface {
	Create(ctx context.Context, u *entity.User) error
	ByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	ByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// SetPassword atomically replaces the hash of the user with the given email
	// and returns the updated user.
	SetPassword(ctx context.Context, email, hash string) (*entity.User, error)
	SetAdmin(ctx context.Context, email string, admin bool) (*entity.User, error)
}

type Statuses interface {
	Create(ctx context.Context, s *entity.Status) error
	ByUser(ctx context.Context, user primitive.ObjectID) (*entity.Status, error)
	SetVerified(ctx context.Context, user primitive.ObjectID) error
	SetAdmitted(ctx context.Context, user, admitter primitive.ObjectID, admitted bool) (*entity.Status, error)
	SetConfirmed(ctx context.Context, user primitive.ObjectID) (*entity.Status, error)
}

type Settings interface {
	Get(ctx context.Context) (*entity.Settings, error)
	// Create stores the singleton. It is ErrDuplicate when settings already exist.
	Create(ctx context.Context, s *entity.Settings) error
	Update(ctx context.Context, p *entity.SettingsPatch) (*entity.Settings, error)
}

type Projects interface {
	Create(ctx context.Context, p *entity.Project) error
	ByID(ctx context.Context, id primitive.ObjectID) (*entity.Project, error)
	ByTeamAndEvent(ctx context.Context, team, event primitive.ObjectID) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	Update(ctx context.Context, id primitive.ObjectID, p *entity.ProjectPatch) (*entity.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddPrize appends prize to the project's prize list and returns the updated project.
	AddPrize(ctx context.Context, id, prize primitive.ObjectID) (*entity.Project, error)
}

type Prizes interface {
	Create(ctx context.Context, p *entity.Prize) error
	ByID(ctx context.Context, id primitive.ObjectID) (*entity.Prize, error)
	List(ctx context.Context) ([]*entity.Prize, error)
	Update(ctx context.Context, id primitive.ObjectID, p *entity.PrizePatch) (*entity.Prize, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Teams interface {
	ByID(ctx context.Context, id primitive.ObjectID) (*entity.Team, error)
	ByMember(ctx context.Context, user primitive.ObjectID) (*entity.Team, error)
}

type Events interface {
	ByName(ctx context.Context, name string) (*entity.Event, error)
	Create(ctx context.Context, e *entity.Event) error
}

type Checkins interface {
	CreateItem(ctx context.Context, item *entity.CheckinItem) error
	ItemByID(ctx context.Context, id primitive.ObjectID) (*entity.CheckinItem, error)
	Items(ctx context.Context) ([]*entity.CheckinItem, error)
	// Record stores a check-in. Checking the same user into the same item twice is ErrDuplicate.
	Record(ctx context.Context, r *entity.CheckinRecord) error
}

// Store bundles every collection of the application.
type Store struct {
	Users    Users
	Statuses Statuses
	Settings Settings
	Projects Projects
	Prizes   Prizes
	Teams    Teams
	Events   Events
	Checkins Checkins
}
