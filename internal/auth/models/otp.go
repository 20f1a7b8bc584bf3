package models

import "time"

// Challenge is one outstanding OTP: the code sent to a phone number, the
// window it is valid for, and how many wrong guesses it has absorbed.
// Name rides along on signup challenges so the account can be created once
// the phone is proven.
type Challenge struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	Name      string    `json:"name,omitempty"`
	Attempts  int       `json:"attempts"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge's validity window has passed.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
