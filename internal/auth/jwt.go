package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller extracted from a bearer token.
// Handle and Name are snapshots from login time; anything that persists an
// identity snapshot re-resolves the record by ID first.
type Identity struct {
	ID     int64
	Name   string
	Handle string
}

// Claims is the token payload: {id, name, handle} plus standard expiry.
type Claims struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer returns an Issuer. If ttl <= 0 the 10-hour default applies.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 10 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token for the given identity.
func (i *Issuer) Sign(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id.ID,
		Name:   id.Name,
		Handle: id.Handle,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

var errInvalidToken = errors.New("invalid token")

// Verify parses and validates a token string and returns the identity it
// carries. Expired or tampered tokens fail.
func (i *Issuer) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, errInvalidToken
	}
	return Identity{ID: claims.UserID, Name: claims.Name, Handle: claims.Handle}, nil
}
