package entity

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Prize struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Event       primitive.ObjectID  `bson:"event" json:"event"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description" json:"description"`
	Eligibility string              `bson:"eligibility" json:"eligibility"`
	Provider    string              `bson:"provider" json:"provider"`
	Winner      *primitive.ObjectID `bson:"winner,omitempty" json:"winner,omitempty"`
}

type PrizePatch struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Eligibility *string             `json:"eligibility"`
	Provider    *string             `json:"provider"`
	Winner      *primitive.ObjectID `json:"winner"`
}

func (p *PrizePatch) Empty() bool {
	return len(p.Fields()) == 0
}

func (p *PrizePatch) Fields() bson.M {
	m := bson.M{}
	setString(m, "name", p.Name)
	setString(m, "description", p.Description)
	setString(m, "eligibility", p.Eligibility)
	setString(m, "provider", p.Provider)
	if p.Winner != nil {
		m["winner"] = *p.Winner
	}
	return m
}

func (p *PrizePatch) Apply(prize *Prize) {
	applyString(&prize.Name, p.Name)
	applyString(&prize.Description, p.Description)
	applyString(&prize.Eligibility, p.Eligibility)
	applyString(&prize.Provider, p.Provider)
	if p.Winner != nil {
		w := *p.Winner
		prize.Winner = &w
	}
}
