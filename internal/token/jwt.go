package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vbote/auth-server/internal/model"
)

// Claims represents JWT claims carrying the session owner's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// JWT implements TokenIssuer backed by symmetric HMAC. It is stateless:
// Validate checks signature and expiry only, never the session store.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a new JWT token issuer with the provided secret key
// and token lifetime.
func NewJWT(secretKey string, ttl time.Duration) model.TokenIssuer {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Issue creates a signed bearer token for the given user.
func (j *JWT) Issue(user model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate checks the token signature and expiry.
func (j *JWT) Validate(tokenString string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("token is invalid")
	}
	return nil
}
