package entity_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
)

var _ = Describe("Password hashing", func() {
	password := "abc123"
	hash, err := entity.GenerateHash(password)
	Expect(err).To(BeNil())
	user := &entity.User{ID: primitive.NewObjectID(), Email: "tech@example.com", Password: hash}

	Specify("good password should validate", func() {
		Expect(user.CheckPassword(password)).To(BeTrue())
	})
	Specify("bad password should not validate", func() {
		Expect(user.CheckPassword("123abc")).To(BeFalse())
	})
	Specify("hash of another password does not validate", func() {
		other, err := entity.GenerateHash("something-else")
		Expect(err).To(BeNil())
		Expect((&entity.User{Password: other}).CheckPassword(password)).To(BeFalse())
	})
	Specify("hash is never serialized", func() {
		b, err := json.Marshal(user)
		Expect(err).To(BeNil())
		Expect(string(b)).NotTo(ContainSubstring(hash))
		Expect(string(b)).NotTo(ContainSubstring("password"))
	})
})
