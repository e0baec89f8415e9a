package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vbote/auth-server/internal/model"
)

// Bcrypt implements PasswordHasher using golang.org/x/crypto/bcrypt.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher with the given cost. Costs outside
// the valid bcrypt range fall back to the library default.
func NewBcrypt(cost int) model.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt digest of the plaintext password.
func (b *Bcrypt) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Matches verifies the plaintext against a stored digest in constant
// time.
func (b *Bcrypt) Matches(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
