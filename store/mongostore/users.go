package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

type users struct {
	repository[entity.User]
}

func (s *users) Create(ctx context.Context, u *entity.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	return s.insert(ctx, u)
}

func (s *users) ByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *users) ByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *users) List(ctx context.Context) ([]*entity.User, error) {
	return s.findAll(ctx, bson.M{})
}

func (s *users) SetPassword(ctx context.Context, email, hash string) (*entity.User, error) {
	return s.findOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": hash}}, false)
}

func (s *users) SetAdmin(ctx context.Context, email string, admin bool) (*entity.User, error) {
	return s.findOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"admin": admin}}, false)
}
