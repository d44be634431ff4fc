// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// Subscriber is an email address registered for the newsletter.
// ID and CreatedAt are assigned by the store on insert.
type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the domain part.
// The local part is left untouched since it may be case sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}
