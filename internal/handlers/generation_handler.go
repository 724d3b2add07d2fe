package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/food-recommender/internal/generation"
	"github.com/Lixing-Zhang/food-recommender/internal/models"
	"github.com/Lixing-Zhang/food-recommender/internal/service"
)

// contentGenerator produces recipe and description text
type contentGenerator interface {
	GenerateRecipe(ctx context.Context, foodName string) (string, error)
	GenerateDescription(ctx context.Context, foodName string) (string, error)
}

// GenerationHandler handles the language-model backed endpoints
type GenerationHandler struct {
	generator contentGenerator
	logger    *slog.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generator contentGenerator, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		generator: generator,
		logger:    logger,
	}
}

// GenerateRecipe handles POST /generate_recipe
func (h *GenerationHandler) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	recipe, err := h.generator.GenerateRecipe(r.Context(), req.FoodName)
	if err != nil {
		h.writeGenerationError(w, err, req.FoodName)
		return
	}

	WriteJSON(w, http.StatusOK, models.RecipeResponse{Recipe: recipe}, h.logger)
}

// GenerateDescription handles POST /generate_description
func (h *GenerationHandler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	description, err := h.generator.GenerateDescription(r.Context(), req.FoodName)
	if err != nil {
		h.writeGenerationError(w, err, req.FoodName)
		return
	}

	WriteJSON(w, http.StatusOK, models.DescriptionResponse{Description: description}, h.logger)
}

func (h *GenerationHandler) decode(w http.ResponseWriter, r *http.Request) (models.GenerateRequest, bool) {
	var req models.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid generation request", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusBadRequest, "food_name is required", h.logger)
		return req, false
	}
	return req, true
}

func (h *GenerationHandler) writeGenerationError(w http.ResponseWriter, err error, foodName string) {
	if errors.Is(err, service.ErrEmptyFoodName) {
		WriteError(w, http.StatusBadRequest, "food_name is required", h.logger)
		return
	}

	h.logger.Error("content generation failed", "food_name", foodName, "error", err)
	WriteError(w, http.StatusInternalServerError, generation.ErrRequestFailed.Error(), h.logger)
}
