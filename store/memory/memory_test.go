package memory_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
	"hackathon-backend/store"
	"hackathon-backend/store/memory"
)

var _ = Describe("Memory store", func() {
	var (
		db  *memory.DB
		s   *store.Store
		ctx = context.Background()
	)

	BeforeEach(func() {
		db = memory.New()
		s = db.Store()
	})

	Describe("Users", func() {
		Specify("email is unique", func() {
			Expect(s.Users.Create(ctx, &entity.User{Email: "a@example.com"})).To(Succeed())
			Expect(s.Users.Create(ctx, &entity.User{Email: "a@example.com"})).To(MatchError(store.ErrDuplicate))
			Expect(db.CountUsers("a@example.com")).To(Equal(1))
		})
		Specify("returned users are copies", func() {
			u := &entity.User{Email: "a@example.com"}
			Expect(s.Users.Create(ctx, u)).To(Succeed())

			got, err := s.Users.ByID(ctx, u.ID)
			Expect(err).To(BeNil())
			got.Admin = true

			again, err := s.Users.ByEmail(ctx, "a@example.com")
			Expect(err).To(BeNil())
			Expect(again.Admin).To(BeFalse())
		})
		Specify("set password of unknown email", func() {
			_, err := s.Users.SetPassword(ctx, "nobody@example.com", "hash")
			Expect(err).To(MatchError(store.ErrNotFound))
		})
	})

	Describe("Settings", func() {
		Specify("only one settings document", func() {
			first, err := entity.SettingsFromTemplate()
			Expect(err).To(BeNil())
			Expect(s.Settings.Create(ctx, first)).To(Succeed())

			second, err := entity.SettingsFromTemplate()
			Expect(err).To(BeNil())
			Expect(s.Settings.Create(ctx, second)).To(MatchError(store.ErrDuplicate))

			got, err := s.Settings.Get(ctx)
			Expect(err).To(BeNil())
			Expect(got.ID).To(Equal(first.ID))
		})
	})

	Describe("Projects", func() {
		Specify("one project per team and event", func() {
			team, event := primitive.NewObjectID(), primitive.NewObjectID()
			Expect(s.Projects.Create(ctx, &entity.Project{Team: team, Event: event})).To(Succeed())
			Expect(s.Projects.Create(ctx, &entity.Project{Team: team, Event: event})).To(MatchError(store.ErrDuplicate))
			Expect(db.CountProjects(team, event)).To(Equal(1))
		})
		Specify("prizes are appended in order", func() {
			p := &entity.Project{Team: primitive.NewObjectID(), Event: primitive.NewObjectID()}
			Expect(s.Projects.Create(ctx, p)).To(Succeed())
			a, b := primitive.NewObjectID(), primitive.NewObjectID()

			_, err := s.Projects.AddPrize(ctx, p.ID, a)
			Expect(err).To(BeNil())
			updated, err := s.Projects.AddPrize(ctx, p.ID, b)
			Expect(err).To(BeNil())
			Expect(updated.Prizes).To(Equal([]primitive.ObjectID{a, b}))
		})
		Specify("delete unknown project", func() {
			Expect(s.Projects.Delete(ctx, primitive.NewObjectID())).To(MatchError(store.ErrNotFound))
		})
	})

	Describe("Statuses", func() {
		Specify("admission upserts and records the admitter", func() {
			user, admin := primitive.NewObjectID(), primitive.NewObjectID()
			st, err := s.Statuses.SetAdmitted(ctx, user, admin, true)
			Expect(err).To(BeNil())
			Expect(st.IsAdmitted()).To(BeTrue())
			Expect(*st.AdmittedBy).To(Equal(admin))
		})
	})

	Describe("Checkins", func() {
		Specify("a user checks into an item once", func() {
			r := func() *entity.CheckinRecord {
				return &entity.CheckinRecord{User: primitive.ObjectID{1}, Item: primitive.ObjectID{2}}
			}
			Expect(s.Checkins.Record(ctx, r())).To(Succeed())
			Expect(s.Checkins.Record(ctx, r())).To(MatchError(store.ErrDuplicate))
			Expect(db.Records()).To(HaveLen(1))
		})
	})
})
