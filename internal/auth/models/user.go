package models

import (
	"regexp"
	"time"

	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// User is an account holder, identified by phone number.
type User struct {
	ID        id.UserID `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// phonePattern accepts E.164: a plus sign, a non-zero leading digit, and up
// to 15 digits total.
var phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// NormalizePhone validates a phone number and returns its canonical form.
func NormalizePhone(phone string) (string, error) {
	if !phonePattern.MatchString(phone) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "phone must be in E.164 format, e.g. +919876543210")
	}
	return phone, nil
}

// NewUser constructs a user with a validated phone number.
func NewUser(userID id.UserID, phone, name string, now time.Time) (*User, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        userID,
		Phone:     normalized,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
