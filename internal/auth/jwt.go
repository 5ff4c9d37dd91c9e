// Package auth provides session tokens, password hashing, and the request
// authentication middleware.
//
// Sessions are stateless: the server keeps no session table. A login issues
// a JWT signed with the process-wide secret, and every protected request
// reconstructs the caller's identity from that token alone. The signature is
// the only thing that makes the claim trustworthy — rotating the secret
// invalidates all outstanding tokens, which is acceptable because a fresh
// login cheaply reissues one.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "twitter-clone"

// SessionClaim is the identity recovered from a verified token. It is
// derived per request and never persisted — its validity is cryptographic.
type SessionClaim struct {
	UserID   string
	Username string
	IssuedAt time.Time
}

// TokenService issues and verifies HS256 session tokens.
//
// It holds the HMAC secret used for both signing and verification. The same
// secret must be used for both operations; keep it out of source control.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and token
// lifetime. The secret should be at least 32 bytes of random data in
// production (e.g. JWT_SECRET=$(openssl rand -hex 32)).
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload: the standard registered claims (sub carries the
// user ID) plus the username, so protected handlers can render handles
// without a user lookup.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given user.
func (s *TokenService) Generate(userID, username string) (string, error) {
	now := time.Now()

	c := claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
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

// Verify parses a token string and returns the SessionClaim it encodes.
//
// The jwt library checks the signature, the expiry, the issuer, and that the
// algorithm really is HS256 (jwt.WithValidMethods closes the algorithm
// confusion hole where a token self-declares "none"). Any failure — missing
// claims included — comes back as an error; callers treat every error here
// as a 401, never a server fault.
func (s *TokenService) Verify(tokenStr string) (SessionClaim, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaim{}, errors.New("auth: token expired")
		}
		return SessionClaim{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return SessionClaim{}, errors.New("auth: invalid token claims")
	}
	if c.Subject == "" || c.Username == "" {
		return SessionClaim{}, errors.New("auth: token missing identity claims")
	}

	claim := SessionClaim{
		UserID:   c.Subject,
		Username: c.Username,
	}
	if c.IssuedAt != nil {
		claim.IssuedAt = c.IssuedAt.Time
	}
	return claim, nil
}
