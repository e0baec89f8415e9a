package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/vbote/auth-server/internal/model"
)

// PasswordHasher is a testify mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Matches(password, digest string) bool {
	args := m.Called(password, digest)
	return args.Bool(0)
}

// TokenIssuer is a testify mock of model.TokenIssuer.
type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(user model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *TokenIssuer) Validate(token string) error {
	args := m.Called(token)
	return args.Error(0)
}
