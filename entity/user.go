package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Admin    bool               `bson:"admin" json:"admin"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Company  string             `bson:"company,omitempty" json:"company,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Public is the projection of a user that is listed to admins.
type Public struct {
	ID      primitive.ObjectID `json:"_id"`
	Email   string             `json:"email"`
	Admin   bool               `json:"admin"`
	Name    string             `json:"name,omitempty"`
	Company string             `json:"company,omitempty"`
}

func (u *User) Public() Public {
	return Public{
		ID:      u.ID,
		Email:   u.Email,
		Admin:   u.Admin,
		Name:    u.Name,
		Company: u.Company,
	}
}
