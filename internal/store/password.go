package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the adaptive work factor applied to every stored password.
const bcryptCost = 12

// hashPassword derives a salted bcrypt hash from the raw password.
// A fresh salt is generated on every call, so hashing the same password
// twice yields different hashes.
func hashPassword(rawPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// comparePassword reports whether rawPassword matches the stored bcrypt hash.
func comparePassword(passwordHash, rawPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(rawPassword)) == nil
}
