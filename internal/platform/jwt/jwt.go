package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind selects which signing secret and lifetime a token uses.
type Kind int

const (
	AccessToken Kind = iota
	RefreshToken
)

var ErrUnknownKind = errors.New("unknown token kind")

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

type kindConfig struct {
	secret []byte
	ttl    time.Duration
}

// Manager signs and verifies access and refresh tokens. Verification is
// pure: it never consults storage.
type Manager struct {
	kinds  map[Kind]kindConfig
	issuer string
}

func NewManager(cfg Config) *Manager {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "pollcast"
	}
	return &Manager{
		kinds: map[Kind]kindConfig{
			AccessToken:  {secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
			RefreshToken: {secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		},
		issuer: issuer,
	}
}

func (m *Manager) Generate(kind Kind, userID uuid.UUID, email string) (string, error) {
	kc, ok := m.kinds[kind]
	if !ok {
		return "", ErrUnknownKind
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(kc.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(kc.secret)
}

// Parse verifies signature, expiry and issuer for the given kind. An access
// token never parses with the refresh secret and vice versa.
func (m *Manager) Parse(kind Kind, tokenStr string) (*Claims, error) {
	kc, ok := m.kinds[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return kc.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Issuer != m.issuer {
			return nil, jwt.ErrTokenInvalidIssuer
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
