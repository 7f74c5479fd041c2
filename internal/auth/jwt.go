package auth

import (
	"errors"
	"fmt"
	"time"

	"todo-list-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadPassphrase is returned by Login when the passphrase does not match.
var ErrBadPassphrase = errors.New("invalid passphrase")

// Subject is the token subject issued for the single local user.
const Subject = "owner"

// Claims represents the JWT claims
type Claims struct {
	jwt.RegisteredClaims
}

// Authenticator checks the passphrase and issues and validates tokens.
type Authenticator struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	hash     []byte
	now      func() time.Time
}

// New hashes the configured passphrase and returns an Authenticator.
func New(cfg config.AuthConfig) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Passphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash passphrase: %w", err)
	}
	return &Authenticator{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTL,
		hash:     hash,
		now:      time.Now,
	}, nil
}

// Login returns a token when passphrase matches the configured one.
func (a *Authenticator) Login(passphrase string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(passphrase)); err != nil {
		return "", ErrBadPassphrase
	}
	return a.GenerateToken(Subject)
}

// GenerateToken generates a JWT token for the given subject
func (a *Authenticator) GenerateToken(subject string) (string, error) {
	now := a.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (a *Authenticator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
