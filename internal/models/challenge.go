package models

import "time"

// RegistrationChallenge is the single pending email-verification record for
// an address. Only the bcrypt hash of the 6-digit code is stored; the row is
// rotated in place on every resend.
type RegistrationChallenge struct {
	Email       string    `json:"email"`
	CodeHash    string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	LastSentAt  time.Time `json:"last_sent_at"`
	ResendCount int       `json:"resend_count"`
	Attempts    int       `json:"attempts"`
	Verified    bool      `json:"verified"`
}
