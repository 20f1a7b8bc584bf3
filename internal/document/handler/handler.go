// Package handler exposes the document metadata HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundready/internal/document/models"
	"fundready/internal/document/service"
	"fundready/internal/platform/middleware"
	"fundready/internal/transport/http/shared"
	id "fundready/pkg/domain"
	dErrors "fundready/pkg/domain-errors"
)

// Service defines the document operations the handler needs.
type Service interface {
	Upload(ctx context.Context, businessID id.BusinessID, requesterID id.UserID, in service.UploadInput) (*models.Document, error)
	List(ctx context.Context, businessID id.BusinessID, requesterID id.UserID) ([]service.GroupListing, error)
	Delete(ctx context.Context, businessID id.BusinessID, docID id.DocumentID, requesterID id.UserID) error
}

// Handler handles document endpoints.
type Handler struct {
	logger       *slog.Logger
	documents    Service
	jwtValidator middleware.JWTValidator
}

func New(documents Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		documents:    documents,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the document routes under the business subtree.
func (h *Handler) Register(r chi.Router) {
	r.Route("/businesses/{businessID}/documents", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/", h.handleUpload)
		r.Get("/", h.handleList)
		r.Delete("/{documentID}", h.handleDelete)
	})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var in service.UploadInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	doc, err := h.documents.Upload(ctx, businessID, middleware.GetUserID(ctx), in)
	if err != nil {
		h.logError(ctx, "failed to record document", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	listings, err := h.documents.List(ctx, businessID, middleware.GetUserID(ctx))
	if err != nil {
		h.logError(ctx, "failed to list documents", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"groups": listings})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	businessID, err := id.ParseBusinessID(chi.URLParam(r, "businessID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	docID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.documents.Delete(ctx, businessID, docID, middleware.GetUserID(ctx)); err != nil {
		h.logError(ctx, "failed to delete document", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
