// Package handler exposes the business profile HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundready/internal/business/models"
	"fundready/internal/business/service"
	"fundready/internal/completion"
	"fundready/internal/platform/middleware"
	"fundready/internal/transport/http/shared"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// Service defines the business operations the handler needs.
type Service interface {
	Create(ctx context.Context, ownerID id.UserID, fields models.Fields) (*models.Business, error)
	ProfileByOwner(ctx context.Context, ownerID id.UserID) (*service.Profile, error)
	Get(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) (*models.Business, error)
	Update(ctx context.Context, businessID id.BusinessID, requesterID id.UserID, update models.Update) (*models.Business, error)
	Completion(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) (*completion.Overview, error)
}

// Handler handles business profile endpoints.
type Handler struct {
	logger       *slog.Logger
	businesses   Service
	jwtValidator middleware.JWTValidator
}

func New(businesses Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		businesses:   businesses,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the business routes. All of them require authentication.
func (h *Handler) Register(r chi.Router) {
	r.Route("/businesses", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleCreate)
		r.Get("/me", h.handleMyProfile)
		r.Get("/{businessID}", h.handleGet)
		r.Patch("/{businessID}", h.handleUpdate)
		r.Get("/{businessID}/completion", h.handleCompletion)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var fields models.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	business, err := h.businesses.Create(ctx, userID, fields)
	if err != nil {
		h.logError(ctx, "failed to create business", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, business)
}

// profileResponse bundles the business with its document buckets.
type profileResponse struct {
	Business *models.Business `json:"business"`
	Groups   []groupResponse  `json:"document_groups"`
}

type groupResponse struct {
	ID     id.DocumentGroupID `json:"id"`
	Type   string             `json:"type"`
	Status string             `json:"status"`
}

func (h *Handler) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	profile, err := h.businesses.ProfileByOwner(ctx, userID)
	if err != nil {
		h.logError(ctx, "failed to load business profile", err)
		shared.WriteError(w, err)
		return
	}

	resp := profileResponse{Business: profile.Business}
	for _, group := range profile.Groups {
		resp.Groups = append(resp.Groups, groupResponse{
			ID:     group.ID,
			Type:   string(group.Type),
			Status: string(group.Status),
		})
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	business, err := h.businesses.Get(ctx, businessID, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(ctx, "failed to get business", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, business)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	business, err := h.businesses.Update(ctx, businessID, middleware.GetUserID(ctx), update)
	if err != nil {
		h.logError(ctx, "failed to update business", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, business)
}

func (h *Handler) handleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	overview, err := h.businesses.Completion(ctx, businessID, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(ctx, "failed to compute completion", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, overview)
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
