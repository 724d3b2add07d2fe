package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// RootMessage is the plain-text liveness message served on GET /
const RootMessage = "Food Recommendation API is running. Use POST /recommend"

// catalogCounter reports how many catalog items are loaded
type catalogCounter interface {
	Count() int
}

// HealthHandler provides health check endpoints
type HealthHandler struct {
	catalog catalogCounter
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog catalogCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	CatalogItems int       `json:"catalog_items"`
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(RootMessage)); err != nil {
		h.logger.Error("failed to write root response", "error", err)
	}
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		Version:      "1.0.0",
		CatalogItems: h.catalog.Count(),
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
