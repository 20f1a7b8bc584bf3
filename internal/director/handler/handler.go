// Package handler exposes the director HTTP endpoints, nested under the
// owning business.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundready/internal/director/models"
	"fundready/internal/director/service"
	"fundready/internal/platform/middleware"
	"fundready/internal/transport/http/shared"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// Service defines the director operations the handler needs.
type Service interface {
	Create(ctx context.Context, businessID id.BusinessID, requesterID id.UserID, fields models.Fields) (*models.Director, error)
	List(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) (*service.Listing, error)
	Update(ctx context.Context, businessID id.BusinessID, directorID id.DirectorID, requesterID id.UserID, update models.Update) (*models.Director, error)
	Delete(ctx context.Context, businessID id.BusinessID, directorID id.DirectorID, requesterID id.UserID) error
}

// Handler handles director endpoints.
type Handler struct {
	logger       *slog.Logger
	directors    Service
	jwtValidator middleware.JWTValidator
}

func New(directors Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		directors:    directors,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the director routes under the business subtree.
func (h *Handler) Register(r chi.Router) {
	r.Route("/businesses/{businessID}/directors", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Patch("/{directorID}", h.handleUpdate)
		r.Delete("/{directorID}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var fields models.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	director, err := h.directors.Create(ctx, businessID, middleware.GetUserID(ctx), fields)
	if err != nil {
		h.logError(ctx, "failed to create director", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, director)
}

// listResponse carries the directors plus the KYC field-completion metric the
// onboarding UI renders next to the list.
type listResponse struct {
	Directors            []models.Director `json:"directors"`
	KYCCompletionPercent int               `json:"kyc_completion_percent"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	listing, err := h.directors.List(ctx, businessID, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(ctx, "failed to list directors", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, listResponse{
		Directors:            listing.Directors,
		KYCCompletionPercent: listing.KYCCompletionPercent,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, directorID, err := pathIDs(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	director, err := h.directors.Update(ctx, businessID, directorID, middleware.GetUserID(ctx), update)
	if err != nil {
		h.logError(ctx, "failed to update director", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, director)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, directorID, err := pathIDs(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.directors.Delete(ctx, businessID, directorID, middleware.GetUserID(ctx)); err != nil {
		h.logError(ctx, "failed to delete director", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathIDs(r *http.Request) (id.BusinessID, id.DirectorID, error) {
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		return id.BusinessID{}, id.DirectorID{}, err
	}
	directorID, err := id.ParseDirectorID(chi.URLParam(r, "directorID"))
	if err != nil {
		return id.BusinessID{}, id.DirectorID{}, err
	}
	return businessID, directorID, nil
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
