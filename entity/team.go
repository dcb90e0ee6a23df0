package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

type Team struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Event   primitive.ObjectID   `bson:"event" json:"event"`
	Name    string               `bson:"name" json:"name"`
	Admin   primitive.ObjectID   `bson:"admin" json:"admin"`
	Members []primitive.ObjectID `bson:"members" json:"members"`
}

func (t *Team) HasMember(id primitive.ObjectID) bool {
	for _, m := range t.Members {
		if m == id {
			return true
		}
	}

	return false
}
