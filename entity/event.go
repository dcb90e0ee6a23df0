package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	StartTime *time.Time         `bson:"start_time,omitempty" json:"startTime,omitempty"`
	EndTime   *time.Time         `bson:"end_time,omitempty" json:"endTime,omitempty"`
}
