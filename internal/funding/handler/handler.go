// Package handler exposes the funding request HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundready/internal/funding/models"
	"fundready/internal/funding/service"
	"fundready/internal/platform/middleware"
	"fundready/internal/transport/http/shared"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// Service defines the funding operations the handler needs.
type Service interface {
	Create(ctx context.Context, requesterID id.UserID, fields models.Fields) (*models.Utility, error)
	List(ctx context.Context, requesterID id.UserID) (*service.Listing, error)
	Submit(ctx context.Context, requesterID id.UserID) (int, error)
	UpdateStatus(ctx context.Context, requesterID id.UserID, utilityID id.FundingUtilityID, next models.Status) (*models.Utility, error)
}

// Handler handles funding request endpoints.
type Handler struct {
	logger       *slog.Logger
	funding      Service
	jwtValidator middleware.JWTValidator
}

func New(funding Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		funding:      funding,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the funding routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/funding-utilities", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Post("/submit", h.handleSubmit)
		r.Patch("/{utilityID}/status", h.handleUpdateStatus)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fields models.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	utility, err := h.funding.Create(ctx, middleware.GetUserID(ctx), fields)
	if err != nil {
		h.logError(ctx, "failed to create funding request", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, utility)
}

// listResponse carries the requests plus the aggregate ask the dashboard
// shows above the list.
type listResponse struct {
	Utilities            []models.Utility `json:"funding_utilities"`
	TotalRequestedAmount int64            `json:"total_requested_amount"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listing, err := h.funding.List(ctx, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(ctx, "failed to list funding requests", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, listResponse{
		Utilities:            listing.Utilities,
		TotalRequestedAmount: listing.TotalRequestedAmount,
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	submitted, err := h.funding.Submit(ctx, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(ctx, "failed to submit funding requests", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"submitted": submitted})
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	utilityID, err := id.ParseFundingUtilityID(chi.URLParam(r, "utilityID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var body struct {
		Status models.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	utility, err := h.funding.UpdateStatus(ctx, middleware.GetUserID(ctx), utilityID, body.Status)
	if err != nil {
		h.logError(ctx, "failed to update funding request status", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, utility)
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
