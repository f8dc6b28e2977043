package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set of a campus archive bearer token.
//
// The client never verifies the signature (it does not hold the signing key);
// claims are read only to show the current identity and expiry.
type Claims struct {
	jwt.RegisteredClaims

	// Role mirrors the "role" claim issued by the backend.
	Role Role `json:"role,omitempty"`
}

// UserID parses the "sub" claim as a base-10 int64.
func (c Claims) UserID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting subject from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting subject to user id: %w", err)
	}

	return userID, nil
}

// Expired reports whether the token carries an expiry that is before now.
// Tokens without "exp" never expire from the client's point of view.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now)
}
