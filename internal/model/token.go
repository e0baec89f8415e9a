package model

// TokenIssuer creates and verifies stateless bearer tokens. It has no
// store access; session lookup is the caller's concern.
type TokenIssuer interface {
	Issue(user User) (string, error)
	Validate(token string) error
}
