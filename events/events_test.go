package events_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"hackathon-backend/events"
)

var _ = Describe("Events", func() {
	Specify("new events get unique ids", func() {
		a := events.New(events.UserRegistered, "u1", nil)
		b := events.New(events.UserRegistered, "u1", nil)
		Expect(a.ID).NotTo(Equal(b.ID))
		Expect(a.Time.IsZero()).To(BeFalse())
	})

	Specify("nop drops events", func() {
		Expect(events.Nop().Publish(context.Background(), events.New(events.UserVerified, "u1", nil))).To(Succeed())
	})

	Specify("recorder keeps publish order", func() {
		r := &events.Recorder{}
		Expect(r.Publish(context.Background(), events.New(events.UserRegistered, "u1", nil))).To(Succeed())
		Expect(r.Publish(context.Background(), events.New(events.UserVerified, "u1", nil))).To(Succeed())
		Expect(r.Types()).To(Equal([]events.Type{events.UserRegistered, events.UserVerified}))
		Expect(r.Events()[0].Subject).To(Equal("u1"))
	})
})
