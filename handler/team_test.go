package handler_test

import (
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

var _ = Describe("Teams and events", func() {
	var (
		h     *harness
		token string
		team  *entity.Team
	)

	BeforeEach(func() {
		h = newHarness()

		var u *entity.User
		u, token = h.register("user@example.com", "secret1")
		team = &entity.Team{Name: "team", Admin: u.ID, Members: []primitive.ObjectID{u.ID}}
		h.db.AddTeam(team)
	})

	Specify("happy path - team", func() {
		w := h.do(http.MethodGet, "/teams/"+team.ID.Hex(), token, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["members"]).To(HaveLen(1))
	})

	Specify("sad path - unknown team", func() {
		Expect(h.do(http.MethodGet, "/teams/"+primitive.NewObjectID().Hex(), token, nil).Code).To(Equal(http.StatusNotFound))
	})

	Specify("sad path - malformed id", func() {
		Expect(h.do(http.MethodGet, "/teams/nope", token, nil).Code).To(Equal(http.StatusBadRequest))
	})

	Specify("sad path - unauthenticated", func() {
		Expect(h.do(http.MethodGet, "/teams/"+team.ID.Hex(), "", nil).Code).To(Equal(http.StatusUnauthorized))
	})

	Specify("happy path - current event", func() {
		w := h.do(http.MethodGet, "/events/current", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["name"]).To(Equal(eventName))
		Expect(decode(w)["_id"]).To(Equal(h.event.ID.Hex()))
	})
})
