package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbote/auth-server/internal/model"
)

func TestJWT_IssueAndValidate(t *testing.T) {
	issuer := NewJWT("secret", time.Hour)
	user := model.User{ID: uuid.New(), Username: "alice", Role: model.RoleUser}

	tokenString, err := issuer.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	assert.NoError(t, issuer.Validate(tokenString))
}

func TestJWT_Validate_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret", time.Hour)
	other := NewJWT("other-secret", time.Hour)

	tokenString, err := issuer.Issue(model.User{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	assert.Error(t, other.Validate(tokenString))
}

func TestJWT_Validate_Expired(t *testing.T) {
	issuer := NewJWT("secret", -time.Minute)

	tokenString, err := issuer.Issue(model.User{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	assert.Error(t, issuer.Validate(tokenString))
}

func TestJWT_Validate_Malformed(t *testing.T) {
	issuer := NewJWT("secret", time.Hour)

	assert.Error(t, issuer.Validate("not-a-token"))
	assert.Error(t, issuer.Validate(""))
}

func TestJWT_Issue_UniqueTokens(t *testing.T) {
	issuer := NewJWT("secret", time.Hour)
	user := model.User{ID: uuid.New(), Username: "alice"}

	first, err := issuer.Issue(user)
	require.NoError(t, err)
	second, err := issuer.Issue(user)
	require.NoError(t, err)

	// The jti claim makes repeated logins produce distinct tokens.
	assert.NotEqual(t, first, second)
}
