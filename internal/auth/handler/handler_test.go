package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"fundready/internal/auth/models"
	"fundready/internal/auth/service"
	"fundready/internal/auth/store"
	"fundready/internal/platform/config"
	"fundready/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite

	otps   *store.InMemoryOTPStore
	issuer *service.TokenIssuer
	router chi.Router
}

const testPhone = "+918765432109"

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.otps = store.NewInMemoryOTPStore()
	s.issuer = service.NewTokenIssuer("test-signing-key", time.Hour)
	svc := service.NewService(store.NewInMemoryUserStore(), s.otps, s.issuer, config.OTPConfig{
		TTL:            5 * time.Minute,
		MaxAttempts:    3,
		ResendCooldown: time.Minute,
	}, logger, nil)

	s.router = chi.NewRouter()
	New(svc, logger).Register(s.router)
}

func (s *HandlerSuite) issuedCode() string {
	challenge, err := s.otps.Get(context.Background(), testPhone)
	s.Require().NoError(err)
	return challenge.Code
}

func (s *HandlerSuite) TestSignupVerifyFlow() {
	resp := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/signup", map[string]string{
		"phone": testPhone,
		"name":  "Lotus Fabrics",
	}))
	s.Require().Equal(http.StatusAccepted, resp.Code)

	resp = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/verify", map[string]string{
		"phone": testPhone,
		"code":  s.issuedCode(),
	}))
	s.Require().Equal(http.StatusOK, resp.Code)

	var session struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(resp.Body.Bytes(), &session))
	s.NotEmpty(session.Token)
	s.Equal(testPhone, session.User.Phone)

	s.Run("issued token validates", func() {
		claims, err := s.issuer.ValidateToken(session.Token)
		s.Require().NoError(err)
		s.Equal(session.User.ID, claims.UserID)
	})
}

func (s *HandlerSuite) TestVerifyValidation() {
	resp := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/verify", map[string]string{
		"phone": testPhone,
		"code":  "12ab56",
	}))
	s.Equal(http.StatusBadRequest, resp.Code)

	resp = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/verify", map[string]string{
		"phone": testPhone,
		"code":  "1234",
	}))
	s.Equal(http.StatusBadRequest, resp.Code)
}

func (s *HandlerSuite) TestLoginUnknownPhone() {
	resp := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login", map[string]string{
		"phone": testPhone,
	}))
	s.Equal(http.StatusNotFound, resp.Code)
}

func (s *HandlerSuite) TestSignupRejectsShortPhone() {
	resp := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/signup", map[string]string{
		"phone": "+9112",
	}))
	s.Equal(http.StatusBadRequest, resp.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}
