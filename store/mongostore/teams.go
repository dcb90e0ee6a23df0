package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

type teams struct {
	repository[entity.Team]
}

func (s *teams) ByID(ctx context.Context, id primitive.ObjectID) (*entity.Team, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *teams) ByMember(ctx context.Context, user primitive.ObjectID) (*entity.Team, error) {
	return s.findOne(ctx, bson.M{"members": user})
}
