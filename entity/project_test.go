package entity_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

var _ = Describe("Patches", func() {
	str := func(s string) *string { return &s }

	Specify("empty project patch", func() {
		Expect((&entity.ProjectPatch{}).Empty()).To(BeTrue())
	})
	Specify("project patch keeps untouched fields", func() {
		p := &entity.Project{Name: "old", URL: "https://old"}
		(&entity.ProjectPatch{Name: str("new")}).Apply(p)
		Expect(p.Name).To(Equal("new"))
		Expect(p.URL).To(Equal("https://old"))
	})
	Specify("prize winner", func() {
		team := primitive.NewObjectID()
		patch := &entity.PrizePatch{Winner: &team}
		Expect(patch.Fields()).To(HaveKeyWithValue("winner", team))

		prize := &entity.Prize{Name: "Best Hack"}
		patch.Apply(prize)
		Expect(*prize.Winner).To(Equal(team))
		Expect(prize.Name).To(Equal("Best Hack"))
	})
})
