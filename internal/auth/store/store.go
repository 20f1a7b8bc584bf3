// Package store persists users and outstanding OTP challenges.
package store

import (
	"context"
	"time"

	"fundready/internal/auth/models"
	id "fundready/pkg/domain"
)

// UserStore is the persistence port for users.
type UserStore interface {
	// Create inserts a new user. Returns sentinel.ErrConflict when the phone
	// is already registered.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
}

// OTPStore keeps at most one outstanding challenge per phone number. Entries
// expire on their own; nothing lives for the process lifetime.
type OTPStore interface {
	// Put stores the challenge under its phone, replacing any previous one,
	// and arms the expiry.
	Put(ctx context.Context, challenge *models.Challenge, ttl time.Duration) error
	// Get returns the outstanding challenge, sentinel.ErrNotFound if none.
	Get(ctx context.Context, phone string) (*models.Challenge, error)
	// RecordAttempt counts one failed guess and returns the running total.
	RecordAttempt(ctx context.Context, phone string) (int, error)
	// Delete discards the challenge, typically after successful verification.
	Delete(ctx context.Context, phone string) error
}
