package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/danivela/cineteca/internal/middleware"
	"github.com/danivela/cineteca/internal/models"
	"github.com/danivela/cineteca/internal/services"
)

// ListHandler handles personal list requests
type ListHandler struct {
	lists  *services.ListService
	logger *log.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(lists *services.ListService, logger *log.Logger) *ListHandler {
	return &ListHandler{
		lists:  lists,
		logger: logger,
	}
}

// Add handles POST /api/{kind}/{id}/list
func (h *ListHandler) Add(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}

	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	list, err := h.lists.Add(r.Context(), email, kind, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, `{"error":"Not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Printf("Failed to add %s %d to list of %s: %v", kind, id, email, err)
		http.Error(w, `{"error":"Failed to update list"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Remove handles DELETE /api/{kind}/{id}/list
func (h *ListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}

	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	list, err := h.lists.Remove(r.Context(), email, kind, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, `{"error":"List not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Printf("Failed to remove %s %d from list of %s: %v", kind, id, email, err)
		http.Error(w, `{"error":"Failed to update list"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /api/list
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}

	list, err := h.lists.Get(r.Context(), email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, `{"error":"List not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Printf("Failed to read list of %s: %v", email, err)
		http.Error(w, `{"error":"Failed to read list"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
