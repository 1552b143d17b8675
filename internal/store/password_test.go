package store

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash1, err := hashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash2, err := hashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// bcrypt salts every hash, so two hashes of the same input differ
	if hash1 == hash2 {
		t.Error("expected two hashes of the same password to differ")
	}

	cost, err := bcrypt.Cost([]byte(hash1))
	if err != nil {
		t.Fatalf("failed to read hash cost: %v", err)
	}
	if cost != bcryptCost {
		t.Errorf("expected cost %d, got %d", bcryptCost, cost)
	}
}

func TestComparePassword(t *testing.T) {
	hash, err := hashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !comparePassword(hash, "secret1") {
		t.Error("expected matching password to compare equal")
	}
	if comparePassword(hash, "wrong") {
		t.Error("expected non-matching password to compare unequal")
	}
	if comparePassword("not-a-bcrypt-hash", "secret1") {
		t.Error("expected malformed hash to fail comparison")
	}
}
