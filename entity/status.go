package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

type Status struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User       primitive.ObjectID  `bson:"user" json:"user"`
	Verified   bool                `bson:"verified" json:"verified"`
	Admitted   *bool               `bson:"admitted,omitempty" json:"admitted,omitempty"`
	AdmittedBy *primitive.ObjectID `bson:"admitted_by,omitempty" json:"admittedBy,omitempty"`
	Confirmed  bool                `bson:"confirmed" json:"confirmed"`
}

// IsAdmitted is false both for rejected users and users without a decision yet.
func (s *Status) IsAdmitted() bool {
	return s.Admitted != nil && *s.Admitted
}
