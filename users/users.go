package users

import (
	"golang.org/x/crypto/bcrypt"
)

// Identity is an admin account able to sign in to the content editor.
type Identity struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Hashed version of the password - never serialize
}

// HashPassword hashes password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	return hashPassword(password, bcrypt.DefaultCost)
}

func hashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the bcrypt hash.
// The comparison is done by bcrypt and is constant time.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
