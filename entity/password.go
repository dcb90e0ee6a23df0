package entity

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// bcrypt rejects longer input
	MaxPasswordLength = 72
	bcryptCost        = 10
)

// GenerateHash returns the bcrypt hash of password.
func GenerateHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
