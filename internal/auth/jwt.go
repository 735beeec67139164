// Package auth issues and verifies bearer credentials and hashes passwords.
//
// A credential is an HS256-signed JWT carrying the user ID (sub) and email.
// Verification is stateless: there is no revocation list, so a leaked token
// stays valid until it expires.
//
// SIGN-IN FLOW:
//  1. POST /auth/register or /auth/login checks the password (PasswordService)
//     and returns {user, token}. GitHub sign-in ends the same way.
//  2. The frontend keeps the token and sends "Authorization: Bearer <token>".
//  3. RequireAuth validates it and puts the caller's Identity in the context.
//  4. Handlers read the Identity and scope every query to that user.
//
// WHAT IS IN A TOKEN:
//
//	header:  {"alg":"HS256","typ":"JWT"}
//	payload: {"sub":"<user id>","email":"mina@gmail.com","iss":"your-yoda","iat":...,"exp":...}
//
// The payload is only base64, not encrypted. Never put anything in it that
// the user shouldn't see.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "your-yoda"

// DefaultTokenTTL is how long an issued credential stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification,
// including expired ones.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// Identity is what a verified credential says about its bearer.
type Identity struct {
	UserID string
	Email  string
}

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. A zero ttl means DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Generate signs a credential for the user valid for the service's TTL.
func (s *TokenService) Generate(userID, email string) (string, error) {
	return s.GenerateWithDuration(userID, email, s.ttl)
}

// GenerateWithDuration signs a credential with a custom lifetime.
// Tests use a negative duration to get an already-expired token.
func (s *TokenService) GenerateWithDuration(userID, email string, d time.Duration) (string, error) {
	now := s.now()

	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate verifies signature, algorithm, issuer and expiry and returns the
// identity in the token. Every failure wraps ErrInvalidToken.
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	return Identity{UserID: c.Subject, Email: c.Email}, nil
}
