package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/danivela/cineteca/internal/models"
	"github.com/danivela/cineteca/internal/services"
)

// CatalogHandler handles catalog browse and detail requests for both kinds
type CatalogHandler struct {
	catalog *services.CatalogService
	logger  *log.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *services.CatalogService, logger *log.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// parseFilter reads the shared filter query parameters
func parseFilter(r *http.Request) models.Filter {
	query := r.URL.Query()

	var genres []int32
	for _, raw := range query["genre"] {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				genres = append(genres, int32(id))
			}
		}
	}

	page, _ := strconv.Atoi(query.Get("page"))

	return models.Filter{
		Query:    query.Get("query"),
		Genres:   genres,
		Language: query.Get("language"),
		Page:     page,
	}
}

// pathKind reads and validates the {kind} path segment
func pathKind(w http.ResponseWriter, r *http.Request) (models.Kind, bool) {
	kind, ok := models.ParseKind(r.PathValue("kind"))
	if !ok {
		http.Error(w, `{"error":"Invalid catalog kind"}`, http.StatusBadRequest)
		return "", false
	}
	return kind, true
}

// pathID reads the {id} path segment
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"error":"Invalid id"}`, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Search handles GET /api/{kind} — local catalog search
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	result, err := h.catalog.Search(r.Context(), kind, parseFilter(r))
	if err != nil {
		h.logger.Printf("Failed to search %s catalog: %v", kind, err)
		http.Error(w, `{"error":"Failed to search catalog"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Popular handles GET /api/{kind}/popular — most popular cached entities
func (h *CatalogHandler) Popular(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	result, err := h.catalog.Popular(r.Context(), kind)
	if err != nil {
		h.logger.Printf("Failed to list popular %s: %v", kind, err)
		http.Error(w, `{"error":"Failed to list popular"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Upcoming handles GET /api/{kind}/upcoming
func (h *CatalogHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	h.remoteList(w, r, h.catalog.Upcoming)
}

// TopRated handles GET /api/{kind}/top-rated
func (h *CatalogHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	h.remoteList(w, r, h.catalog.TopRated)
}

func (h *CatalogHandler) remoteList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context, kind models.Kind, filter models.Filter) (*models.Page, error)) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	result, err := list(r.Context(), kind, parseFilter(r))
	if err != nil {
		h.writeListError(w, kind, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Detail handles GET /api/{kind}/{id}/detail — cache-aside resolution
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entity, err := h.catalog.Detail(r.Context(), kind, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, `{"error":"Not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Printf("Failed to resolve %s %d: %v", kind, id, err)
		http.Error(w, `{"error":"Failed to fetch detail"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

// Recommendations handles GET /api/{kind}/{id}/recommendations
func (h *CatalogHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.catalog.Recommendations(r.Context(), kind, id, parseFilter(r))
	if err != nil {
		h.writeListError(w, kind, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Watch handles GET /api/{kind}/{id}/watch
func (h *CatalogHandler) Watch(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ref, err := h.catalog.Watch(r.Context(), kind, id)
	if err != nil {
		if errors.Is(err, models.ErrVideoNotFound) {
			http.Error(w, `{"error":"Video not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Printf("Failed to resolve video for %s %d: %v", kind, id, err)
		http.Error(w, `{"error":"Failed to resolve video"}`, http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

// writeListError maps remote listing failures. Unlike single-entity
// resolution, listing calls do not degrade to an empty result; upstream
// failures surface to the caller.
func (h *CatalogHandler) writeListError(w http.ResponseWriter, kind models.Kind, err error) {
	if errors.Is(err, models.ErrProviderUnavailable) || errors.Is(err, models.ErrInvalidPayload) {
		h.logger.Printf("Provider listing for %s failed: %v", kind, err)
		http.Error(w, `{"error":"Catalog provider unavailable"}`, http.StatusBadGateway)
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, `{"error":"Not found"}`, http.StatusNotFound)
		return
	}
	h.logger.Printf("Failed to list %s: %v", kind, err)
	http.Error(w, `{"error":"Failed to list catalog"}`, http.StatusInternalServerError)
}
