package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CheckinItem struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Event             primitive.ObjectID `bson:"event" json:"event"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description" json:"description"`
	Points            int                `bson:"points" json:"points"`
	EnableSelfCheckin bool               `bson:"enable_self_checkin" json:"enableSelfCheckin"`
}

type CheckinRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Item        primitive.ObjectID `bson:"item" json:"item"`
	CheckedInBy primitive.ObjectID `bson:"checked_in_by" json:"checkedInBy"`
	Time        time.Time          `bson:"time" json:"time"`
}
