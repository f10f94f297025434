// Package models defines client-side data models used by the ThumbKeeper
// session, profile, history and generation components.
package models

import "time"

// User is the authenticated identity carried by a Session.
type User struct {
	ID    string
	Email string
}

// Session is proof of an authenticated user's identity for the current
// client run.
type Session struct {
	// AccessToken is the bearer token issued by the auth provider.
	AccessToken string

	// User is the identity the token was issued for.
	User User

	// ExpiresAt is when the provider stops honoring AccessToken.
	ExpiresAt time.Time
}

// UserID returns the session owner's id, or "" for a nil session.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.User.ID
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// AuthEventType names an auth-state change emitted by the provider.
type AuthEventType string

const (
	AuthEventSignedIn     AuthEventType = "SIGNED_IN"
	AuthEventSignedOut    AuthEventType = "SIGNED_OUT"
	AuthEventTokenExpired AuthEventType = "TOKEN_EXPIRED"
)

// AuthEvent is delivered to OnAuthStateChange subscribers. Session is nil
// for sign-out and expiry.
type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}
