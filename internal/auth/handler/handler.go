// Package handler exposes the phone plus OTP authentication endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"fundready/internal/auth/service"
	"fundready/internal/platform/middleware"
	"fundready/internal/transport/http/shared"
	dErrors "fundready/pkg/domain-errors"
)

// Service defines the auth operations the handler needs.
type Service interface {
	Signup(ctx context.Context, phone, name string) error
	Login(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) (*service.Session, error)
}

// Handler handles the auth endpoints. They are the only unauthenticated
// routes in the API.
type Handler struct {
	logger *slog.Logger
	auth   Service
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, auth: auth}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/login", h.handleLogin)
		r.Post("/verify", h.handleVerify)
	})
}

type signupRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

func validateSignupRequest(req signupRequest) error {
	if !govalidator.StringLength(req.Phone, "8", "16") {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid phone")
	}
	if len(req.Name) > 255 {
		return dErrors.New(dErrors.CodeInvalidInput, "name too long")
	}
	return nil
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validateSignupRequest(req); err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.auth.Signup(ctx, req.Phone, req.Name); err != nil {
		h.logError(ctx, "signup failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "verification code sent"})
}

type loginRequest struct {
	Phone string `json:"phone"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if !govalidator.StringLength(req.Phone, "8", "16") {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid phone"))
		return
	}

	if err := h.auth.Login(ctx, req.Phone); err != nil {
		h.logError(ctx, "login failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "verification code sent"})
}

type verifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func validateVerifyRequest(req verifyRequest) error {
	if !govalidator.StringLength(req.Phone, "8", "16") {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid phone")
	}
	if !govalidator.StringLength(req.Code, "6", "6") || !govalidator.IsNumeric(req.Code) {
		return dErrors.New(dErrors.CodeInvalidInput, "code must be 6 digits")
	}
	return nil
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := validateVerifyRequest(req); err != nil {
		shared.WriteError(w, err)
		return
	}

	session, err := h.auth.Verify(ctx, req.Phone, req.Code)
	if err != nil {
		h.logError(ctx, "verification failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	logFn := h.logger.WarnContext
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		logFn = h.logger.ErrorContext
	}
	logFn(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
