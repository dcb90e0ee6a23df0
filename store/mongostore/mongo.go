// Package mongostore implements store on top of MongoDB.
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"hackathon-backend/entity"
	"hackathon-backend/log"
	"hackathon-backend/store"
)

const (
	cUsers          = "users"
	cStatuses       = "statuses"
	cSettings       = "settings"
	cProjects       = "projects"
	cPrizes         = "prizes"
	cTeams          = "teams"
	cEvents         = "events"
	cCheckinItems   = "checkin_items"
	cCheckinRecords = "checkin_records"
)

// Connect opens a client and checks that the server answers.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// New creates the indexes the application relies on and returns the store.
func New(ctx context.Context, db *mongo.Database) (*store.Store, error) {
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &store.Store{
		Users:    &users{repository[entity.User]{db.Collection(cUsers)}},
		Statuses: &statuses{repository[entity.Status]{db.Collection(cStatuses)}},
		Settings: &settings{repository[entity.Settings]{db.Collection(cSettings)}},
		Projects: &projects{repository[entity.Project]{db.Collection(cProjects)}},
		Prizes:   &prizes{repository[entity.Prize]{db.Collection(cPrizes)}},
		Teams:    &teams{repository[entity.Team]{db.Collection(cTeams)}},
		Events:   &events{repository[entity.Event]{db.Collection(cEvents)}},
		Checkins: &checkins{
			items:   repository[entity.CheckinItem]{db.Collection(cCheckinItems)},
			records: repository[entity.CheckinRecord]{db.Collection(cCheckinRecords)},
		},
	}, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		cUsers:    {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		cStatuses: {{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique}},
		cProjects: {{Keys: bson.D{{Key: "team", Value: 1}, {Key: "event", Value: 1}}, Options: unique}},
		cTeams:    {{Keys: bson.D{{Key: "members", Value: 1}}}},
		cEvents:   {{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique}},
		cCheckinRecords: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "item", Value: 1}}, Options: unique},
		},
	}

	for collection, models := range indexes {
		_, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			log.Logger.Error("unable to create index", zap.String("collection", collection), zap.Error(err))
			return err
		}
	}

	return nil
}
