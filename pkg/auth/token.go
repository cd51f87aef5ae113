package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultIssuer = "pilot"
	defaultTTL    = 7 * 24 * time.Hour
)

// Claims are carried in every session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

// NewTokens returns Tokens with the default lifetime and issuer.
func NewTokens(secret string) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: defaultTTL, Issuer: defaultIssuer}
}

func (t *Tokens) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

// Issue signs a token for the user.
func (t *Tokens) Issue(userID, email string) (string, error) {
	if len(t.Secret) == 0 {
		return "", errors.New("auth: signing secret not configured")
	}
	ttl := t.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	now := t.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    t.issuer(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its session. Every failure wraps
// ErrUnauthenticated.
func (t *Tokens) Parse(token string) (*Session, error) {
	if len(t.Secret) == 0 {
		return nil, errors.New("auth: signing secret not configured")
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.Secret, nil
	},
		jwt.WithIssuer(t.issuer()),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	s := &Session{UserID: claims.Subject, Email: claims.Email}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

func (t *Tokens) issuer() string {
	if t.Issuer == "" {
		return defaultIssuer
	}
	return t.Issuer
}
