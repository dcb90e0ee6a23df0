package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

type prizes struct {
	repository[entity.Prize]
}

func (s *prizes) Create(ctx context.Context, p *entity.Prize) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	return s.insert(ctx, p)
}

func (s *prizes) ByID(ctx context.Context, id primitive.ObjectID) (*entity.Prize, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *prizes) List(ctx context.Context) ([]*entity.Prize, error) {
	return s.findAll(ctx, bson.M{})
}

func (s *prizes) Update(ctx context.Context, id primitive.ObjectID, p *entity.PrizePatch) (*entity.Prize, error) {
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": p.Fields()}, false)
}

func (s *prizes) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteOne(ctx, bson.M{"_id": id})
}
