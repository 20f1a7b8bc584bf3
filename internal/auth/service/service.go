// Package service owns the phone plus OTP authentication flow. Codes live in
// a keyed store with a real TTL and an attempt budget; SMS delivery itself is
// a logged side effect here, not a wired provider.
package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"fundready/internal/auth/models"
	"fundready/internal/platform/config"
	"fundready/internal/platform/metrics"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
	"fundready/pkg/platform/sentinel"
)

// UserStore is the persistence port for users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
}

// OTPStore keeps outstanding challenges with expiry.
type OTPStore interface {
	Put(ctx context.Context, challenge *models.Challenge, ttl time.Duration) error
	Get(ctx context.Context, phone string) (*models.Challenge, error)
	RecordAttempt(ctx context.Context, phone string) (int, error)
	Delete(ctx context.Context, phone string) error
}

const otpDigits = 6

// Service runs signup, login, and verification.
type Service struct {
	users   UserStore
	otps    OTPStore
	issuer  *TokenIssuer
	cfg     config.OTPConfig
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(users UserStore, otps OTPStore, issuer *TokenIssuer, cfg config.OTPConfig, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:   users,
		otps:    otps,
		issuer:  issuer,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// SetClock overrides the service clock for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Signup starts registration: the phone must be new, and a code is sent.
func (s *Service) Signup(ctx context.Context, phone, name string) error {
	normalized, err := models.NormalizePhone(phone)
	if err != nil {
		return err
	}

	_, err = s.users.FindByPhone(ctx, normalized)
	switch {
	case err == nil:
		return dErrors.New(dErrors.CodeConflict, "phone already registered")
	case !errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	return s.issueChallenge(ctx, normalized, name)
}

// Login starts authentication for an existing account.
func (s *Service) Login(ctx context.Context, phone string) error {
	normalized, err := models.NormalizePhone(phone)
	if err != nil {
		return err
	}

	if _, err := s.users.FindByPhone(ctx, normalized); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "no account for this phone")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	return s.issueChallenge(ctx, normalized, "")
}

// Session is the result of a successful verification.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Verify checks the code for the phone and returns a signed session. The
// account is created here for signup flows, once the phone is proven.
func (s *Service) Verify(ctx context.Context, phone, code string) (*Session, error) {
	normalized, err := models.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	challenge, err := s.otps.Get(ctx, normalized)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "no active code for this phone")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load code")
	}
	if challenge.Expired(s.now()) {
		_ = s.otps.Delete(ctx, normalized)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "code has expired")
	}
	if challenge.Attempts >= s.cfg.MaxAttempts {
		return nil, dErrors.New(dErrors.CodeRateLimited, "too many incorrect attempts, request a new code")
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		attempts, recErr := s.otps.RecordAttempt(ctx, normalized)
		if recErr == nil && attempts >= s.cfg.MaxAttempts {
			return nil, dErrors.New(dErrors.CodeRateLimited, "too many incorrect attempts, request a new code")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "incorrect code")
	}

	if err := s.otps.Delete(ctx, normalized); err != nil {
		s.logger.WarnContext(ctx, "failed to discard verified otp", "error", err.Error())
	}

	user, err := s.findOrCreateUser(ctx, normalized, challenge.Name)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, user.Phone, s.now())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	return &Session{Token: token, User: user}, nil
}

func (s *Service) issueChallenge(ctx context.Context, phone, name string) error {
	if existing, err := s.otps.Get(ctx, phone); err == nil {
		if s.now().Sub(existing.IssuedAt) < s.cfg.ResendCooldown {
			return dErrors.New(dErrors.CodeRateLimited, "a code was sent recently, wait before requesting another")
		}
	}

	code, err := generateCode()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate code")
	}

	now := s.now()
	challenge := &models.Challenge{
		Phone:     phone,
		Code:      code,
		Name:      name,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	if err := s.otps.Put(ctx, challenge, s.cfg.TTL); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store code")
	}

	if s.metrics != nil {
		s.metrics.OTPsIssued.Inc()
	}
	// SMS delivery is out of scope; the code surfaces in debug logs for
	// local development.
	s.logger.InfoContext(ctx, "otp issued", "phone", phone)
	s.logger.DebugContext(ctx, "otp code", "phone", phone, "code", code)
	return nil
}

func (s *Service) findOrCreateUser(ctx context.Context, phone, name string) (*models.User, error) {
	user, err := s.users.FindByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	user, err = models.NewUser(id.NewUserID(), phone, name, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost a race with a concurrent verification; the account exists.
			return s.users.FindByPhone(ctx, phone)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	if s.metrics != nil {
		s.metrics.UsersCreated.Inc()
	}
	return user, nil
}

func generateCode() (string, error) {
	upper := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		upper.Mul(upper, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
