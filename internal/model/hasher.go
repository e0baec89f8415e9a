package model

// PasswordHasher provides one-way password hashing and constant-time
// verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(password, digest string) bool
}
