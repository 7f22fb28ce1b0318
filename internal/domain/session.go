package domain

import "time"

// SessionClaims are the verified contents of a session token
type SessionClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
