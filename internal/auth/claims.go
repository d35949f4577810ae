package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims the API embeds in an access token. The
// client never verifies the signature (it holds no key); it only inspects
// the payload to surface the user ID and warn before the token lapses.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Validate performs additional validation on session claims
func (c *SessionClaims) Validate() error {
	if c.UserID == "" && c.Subject == "" {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}

// Identity returns the user identifier, preferring the custom claim over
// the registered subject.
func (c *SessionClaims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// ExpiresWithin reports whether the token lapses inside the given window.
// Tokens without an exp claim never report expiry.
func (c *SessionClaims) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now.Add(window))
}

// InspectToken decodes an access token WITHOUT verifying its signature.
// Verification is the server's job; a tampered token simply fails the next
// remote call with an authorization error.
func InspectToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("inspect token: %w", err)
	}

	if err := claims.Validate(); err != nil {
		return nil, fmt.Errorf("inspect token: %w", err)
	}

	return claims, nil
}
