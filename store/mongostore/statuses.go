package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

type statuses struct {
	repository[entity.Status]
}

func (s *statuses) Create(ctx context.Context, st *entity.Status) error {
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}

	return s.insert(ctx, st)
}

func (s *statuses) ByUser(ctx context.Context, user primitive.ObjectID) (*entity.Status, error) {
	return s.findOne(ctx, bson.M{"user": user})
}

func (s *statuses) SetVerified(ctx context.Context, user primitive.ObjectID) error {
	_, err := s.findOneAndUpdate(ctx, bson.M{"user": user}, bson.M{"$set": bson.M{"verified": true}}, true)
	return err
}

func (s *statuses) SetAdmitted(ctx context.Context, user, admitter primitive.ObjectID, admitted bool) (*entity.Status, error) {
	return s.findOneAndUpdate(ctx, bson.M{"user": user}, bson.M{"$set": bson.M{
		"admitted":    admitted,
		"admitted_by": admitter,
	}}, true)
}

func (s *statuses) SetConfirmed(ctx context.Context, user primitive.ObjectID) (*entity.Status, error) {
	return s.findOneAndUpdate(ctx, bson.M{"user": user}, bson.M{"$set": bson.M{"confirmed": true}}, false)
}
