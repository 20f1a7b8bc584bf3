//go:build integration

package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"fundready/internal/auth/service"
	"fundready/internal/auth/store"
	"fundready/internal/platform/config"
	id "fundready/pkg/domain"
	"fundready/pkg/platform/sentinel"
	"fundready/pkg/testutil/containers"
)

// AuthFlowSuite runs the signup and login flows against real Postgres and
// Redis instances.
type AuthFlowSuite struct {
	suite.Suite

	pg      *containers.PostgresContainer
	redis   *containers.RedisContainer
	otps    *store.RedisOTPStore
	issuer  *service.TokenIssuer
	service *service.Service
}

const testPhone = "+919812345678"

func (s *AuthFlowSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *AuthFlowSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.pg.TruncateTables(ctx, "users"))
	s.Require().NoError(s.redis.FlushAll(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.otps = store.NewRedisOTPStore(s.redis.Client)
	s.issuer = service.NewTokenIssuer("integration-test-key", time.Hour)
	s.service = service.NewService(store.NewPostgresUserStore(s.pg.DB), s.otps, s.issuer, config.OTPConfig{
		TTL:            2 * time.Minute,
		MaxAttempts:    3,
		ResendCooldown: time.Second,
	}, logger, nil)
}

func (s *AuthFlowSuite) issuedCode() string {
	challenge, err := s.otps.Get(context.Background(), testPhone)
	s.Require().NoError(err)
	return challenge.Code
}

func (s *AuthFlowSuite) TestSignupVerifyLogin() {
	ctx := context.Background()

	s.Require().NoError(s.service.Signup(ctx, testPhone, "Meera Textiles"))

	session, err := s.service.Verify(ctx, testPhone, s.issuedCode())
	s.Require().NoError(err)
	s.Equal(testPhone, session.User.Phone)
	s.Equal("Meera Textiles", session.User.Name)

	claims, err := s.issuer.ValidateToken(session.Token)
	s.Require().NoError(err)
	s.Equal(session.User.ID, claims.UserID)

	s.Run("code is single use", func() {
		_, err := s.otps.Get(ctx, testPhone)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("login reuses the account", func() {
		time.Sleep(1100 * time.Millisecond)
		s.Require().NoError(s.service.Login(ctx, testPhone))

		again, err := s.service.Verify(ctx, testPhone, s.issuedCode())
		s.Require().NoError(err)
		s.Equal(session.User.ID, again.User.ID)
	})
}

func (s *AuthFlowSuite) TestChallengeExpires() {
	ctx := context.Background()

	s.Require().NoError(s.service.Signup(ctx, testPhone, "X"))

	challenge, err := s.otps.Get(ctx, testPhone)
	s.Require().NoError(err)
	s.NotEmpty(challenge.Code)

	// Rearm the challenge with a 1s TTL and wait it out.
	s.Require().NoError(s.otps.Put(ctx, challenge, time.Second))
	time.Sleep(1500 * time.Millisecond)

	_, err = s.otps.Get(ctx, testPhone)
	s.Require().True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *AuthFlowSuite) TestAttemptsSurviveRestart() {
	ctx := context.Background()

	s.Require().NoError(s.service.Signup(ctx, testPhone, "X"))

	// Attempts are tracked in Redis, so a fresh store sees the running total.
	n, err := s.otps.RecordAttempt(ctx, testPhone)
	s.Require().NoError(err)
	s.Equal(1, n)

	fresh := store.NewRedisOTPStore(s.redis.Client)
	challenge, err := fresh.Get(ctx, testPhone)
	s.Require().NoError(err)
	s.Equal(1, challenge.Attempts)
}

func (s *AuthFlowSuite) TestDuplicatePhoneConflicts() {
	ctx := context.Background()
	users := store.NewPostgresUserStore(s.pg.DB)

	s.Require().NoError(s.service.Signup(ctx, testPhone, "First"))
	_, err := s.service.Verify(ctx, testPhone, s.issuedCode())
	s.Require().NoError(err)

	existing, err := users.FindByPhone(ctx, testPhone)
	s.Require().NoError(err)
	s.Equal("First", existing.Name)

	dup := *existing
	dup.ID = id.NewUserID()
	s.Require().ErrorIs(users.Create(ctx, &dup), sentinel.ErrConflict)
}

func TestAuthFlowSuite(t *testing.T) {
	suite.Run(t, new(AuthFlowSuite))
}
