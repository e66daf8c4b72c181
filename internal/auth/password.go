package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// Hasher performs one-way password hashing and verification.
type Hasher struct {
	cost int
}

// NewHasher creates a bcrypt-backed hasher with the default work factor.
func NewHasher() *Hasher {
	return &Hasher{cost: bcryptCost}
}

// Hash produces a salted bcrypt hash of the plaintext. Each call salts
// independently, so repeated calls return different strings that all verify.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext was the input originally hashed into
// hash. Malformed hashes verify as false rather than erroring.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
