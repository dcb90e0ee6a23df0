package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

type projects struct {
	repository[entity.Project]
}

func (s *projects) Create(ctx context.Context, p *entity.Project) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Prizes == nil {
		p.Prizes = []primitive.ObjectID{}
	}

	return s.insert(ctx, p)
}

func (s *projects) ByID(ctx context.Context, id primitive.ObjectID) (*entity.Project, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *projects) ByTeamAndEvent(ctx context.Context, team, event primitive.ObjectID) (*entity.Project, error) {
	return s.findOne(ctx, bson.M{"team": team, "event": event})
}

func (s *projects) List(ctx context.Context) ([]*entity.Project, error) {
	return s.findAll(ctx, bson.M{})
}

func (s *projects) Update(ctx context.Context, id primitive.ObjectID, p *entity.ProjectPatch) (*entity.Project, error) {
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": p.Fields()}, false)
}

func (s *projects) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteOne(ctx, bson.M{"_id": id})
}

func (s *projects) AddPrize(ctx context.Context, id, prize primitive.ObjectID) (*entity.Project, error) {
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"prizes": prize}}, false)
}
