package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt hashes start with one of these markers depending on the
// algorithm variant that produced them.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// PasswordHasher hashes and verifies passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher. Costs outside the valid
// bcrypt range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password. Each call salts anew, so
// hashing the same password twice yields different strings.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check reports whether password matches hash. A malformed hash fails
// the check rather than producing an error.
func (h *PasswordHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// LooksHashed reports whether value already carries a bcrypt prefix
// marker. The admin edit form round-trips the stored hash as an opaque
// value; this check keeps it from being hashed a second time.
func LooksHashed(value string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
