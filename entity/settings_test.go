package entity_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"hackathon-backend/entity"
)

var _ = Describe("Settings", func() {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	Describe("registration window", func() {
		Specify("unbounded window is open", func() {
			Expect((&entity.Settings{}).IsRegistrationOpen(now)).To(BeTrue())
		})
		Specify("open inside the window", func() {
			s := &entity.Settings{TimeOpen: &before, TimeClose: &after}
			Expect(s.IsRegistrationOpen(now)).To(BeTrue())
		})
		Specify("closed before opening", func() {
			s := &entity.Settings{TimeOpen: &after}
			Expect(s.IsRegistrationOpen(now)).To(BeFalse())
		})
		Specify("closed after closing", func() {
			s := &entity.Settings{TimeClose: &before}
			Expect(s.IsRegistrationOpen(now)).To(BeFalse())
		})
	})

	Describe("confirmation window", func() {
		Specify("closes at timeConfirm, not timeClose", func() {
			s := &entity.Settings{TimeOpen: &before, TimeClose: &before, TimeConfirm: &after}
			Expect(s.IsRegistrationOpen(now)).To(BeFalse())
			Expect(s.IsConfirmationOpen(now)).To(BeTrue())
		})
	})

	Describe("template", func() {
		Specify("zero values are left unset", func() {
			s, err := entity.SettingsFromTemplate()
			Expect(err).To(BeNil())
			Expect(s.TimeOpen).To(BeNil())
			Expect(s.TimeClose).To(BeNil())
			Expect(s.TimeConfirm).To(BeNil())
			Expect(s.Params).To(HaveKeyWithValue("maxTeamSize", float64(4)))
			Expect(s.Params).To(HaveKeyWithValue("enableProjects", true))
		})
	})

	Describe("patch", func() {
		Specify("only set fields are written", func() {
			p := &entity.SettingsPatch{TimeClose: &after, Params: map[string]interface{}{"maxTeamSize": 5}}
			Expect(p.Fields()).To(HaveLen(2))
			Expect(p.Fields()).To(HaveKeyWithValue("params.maxTeamSize", 5))

			s := &entity.Settings{}
			p.Apply(s)
			Expect(*s.TimeClose).To(Equal(after))
			Expect(s.Params).To(HaveKeyWithValue("maxTeamSize", 5))
		})
		Specify("sad path - dotted parameter names", func() {
			p := &entity.SettingsPatch{Params: map[string]interface{}{"a.b": 1}}
			Expect(p.Valid()).To(BeFalse())
			p = &entity.SettingsPatch{Params: map[string]interface{}{"$set": 1}}
			Expect(p.Valid()).To(BeFalse())
		})
	})
})
