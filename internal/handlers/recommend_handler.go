package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/food-recommender/internal/models"
	"github.com/Lixing-Zhang/food-recommender/internal/service"
)

// recommender produces recommendations for a request
type recommender interface {
	Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error)
}

// RecommendHandler handles recommendation HTTP requests
type RecommendHandler struct {
	service recommender
	logger  *slog.Logger
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(service recommender, logger *slog.Logger) *RecommendHandler {
	return &RecommendHandler{
		service: service,
		logger:  logger,
	}
}

// Recommend handles POST /recommend
// - 200: {mealtime, weather, recommendations}
// - 400: missing, non-numeric or out of range coordinates
// - 500: weather provider unreachable
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid recommend request", "error", err)
		WriteError(w, http.StatusBadRequest, "latitude and longitude must be valid coordinates", h.logger)
		return
	}

	resp, err := h.service.Recommend(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMissingCoordinates) {
			WriteError(w, http.StatusBadRequest, "latitude and longitude must be valid coordinates", h.logger)
			return
		}

		h.logger.Error("failed to build recommendations", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("recommendations served",
		"mealtime", resp.MealTime,
		"count", len(resp.Recommendations),
		"weather_available", resp.Weather != nil,
	)
	WriteJSON(w, http.StatusOK, resp, h.logger)
}
