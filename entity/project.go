package entity

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Team        primitive.ObjectID   `bson:"team" json:"team"`
	Event       primitive.ObjectID   `bson:"event" json:"event"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	URL         string               `bson:"url" json:"url"`
	Slides      string               `bson:"slides" json:"slides"`
	Video       string               `bson:"video" json:"video"`
	Prizes      []primitive.ObjectID `bson:"prizes" json:"prizes"`
}

// ProjectPatch lists the fields of a project that can be edited after creation.
type ProjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Slides      *string `json:"slides"`
	Video       *string `json:"video"`
}

func (p *ProjectPatch) Empty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the $set document for the patch.
func (p *ProjectPatch) Fields() bson.M {
	m := bson.M{}
	setString(m, "name", p.Name)
	setString(m, "description", p.Description)
	setString(m, "url", p.URL)
	setString(m, "slides", p.Slides)
	setString(m, "video", p.Video)
	return m
}

func (p *ProjectPatch) Apply(project *Project) {
	applyString(&project.Name, p.Name)
	applyString(&project.Description, p.Description)
	applyString(&project.URL, p.URL)
	applyString(&project.Slides, p.Slides)
	applyString(&project.Video, p.Video)
}

func setString(m bson.M, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
