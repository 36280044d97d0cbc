package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

// DefaultTTL matches the session lifetime issued at login/registration.
const DefaultTTL = 24 * time.Hour

// Claims carries the identity embedded in a session token.
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Nome   string `json:"nome"`
	Cargo  string `json:"cargo"`
	jwt.RegisteredClaims
}

type Manager struct{ secret []byte }

func NewManager(secret string) *Manager { return &Manager{secret: []byte(secret)} }

// Sign issues an HS256 token for the given identity with the given ttl.
// ttl <= 0 means DefaultTTL.
func (m *Manager) Sign(userID uint, email, nome, cargo string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	c := Claims{
		UserID: userID,
		Email:  email,
		Nome:   nome,
		Cargo:  cargo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Verify parses and validates a token. Any failure (bad signature, expiry,
// malformed input) comes back as an error; callers treat it as unauthenticated.
func (m *Manager) Verify(tok string) (*Claims, error) {
	var c Claims
	parsed, err := jwt.ParseWithClaims(tok, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return &c, nil
}
