package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

type events struct {
	repository[entity.Event]
}

func (s *events) ByName(ctx context.Context, name string) (*entity.Event, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *events) Create(ctx context.Context, e *entity.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}

	return s.insert(ctx, e)
}
