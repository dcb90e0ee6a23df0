package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

// settingsID is the _id of the only settings document. A second insert fails on
// the primary key, so concurrent startups cannot create two.
var settingsID = primitive.ObjectID{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}

// settings holds a single document, so every filter is empty.
type settings struct {
	repository[entity.Settings]
}

func (s *settings) Get(ctx context.Context) (*entity.Settings, error) {
	return s.findOne(ctx, bson.M{})
}

func (s *settings) Create(ctx context.Context, st *entity.Settings) error {
	st.ID = settingsID
	return s.insert(ctx, st)
}

func (s *settings) Update(ctx context.Context, p *entity.SettingsPatch) (*entity.Settings, error) {
	return s.findOneAndUpdate(ctx, bson.M{}, bson.M{"$set": p.Fields()}, false)
}
