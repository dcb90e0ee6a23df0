package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"hackathon-backend/entity"
)

type checkins struct {
	items   repository[entity.CheckinItem]
	records repository[entity.CheckinRecord]
}

func (s *checkins) CreateItem(ctx context.Context, item *entity.CheckinItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}

	return s.items.insert(ctx, item)
}

func (s *checkins) ItemByID(ctx context.Context, id primitive.ObjectID) (*entity.CheckinItem, error) {
	return s.items.findOne(ctx, bson.M{"_id": id})
}

func (s *checkins) Items(ctx context.Context) ([]*entity.CheckinItem, error) {
	return s.items.findAll(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *checkins) Record(ctx context.Context, r *entity.CheckinRecord) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}

	return s.records.insert(ctx, r)
}
