package repository

import (
	"context"
	"strings"

	"github.com/Lixing-Zhang/food-recommender/internal/models"
)

// FoodRepository defines the interface for catalog data access
type FoodRepository interface {
	GetAll(ctx context.Context) ([]models.FoodItem, error)
	GetByCategories(ctx context.Context, categories []string) ([]models.FoodItem, error)
	Count() int
}

// InMemoryFoodRepository serves a catalog loaded at startup.
// The backing slice is never written after construction.
type InMemoryFoodRepository struct {
	items []models.FoodItem
}

// NewInMemoryFoodRepository creates a repository over the given items
func NewInMemoryFoodRepository(items []models.FoodItem) *InMemoryFoodRepository {
	owned := make([]models.FoodItem, len(items))
	copy(owned, items)

	return &InMemoryFoodRepository{
		items: owned,
	}
}

// GetAll returns every item in catalog order
func (r *InMemoryFoodRepository) GetAll(ctx context.Context) ([]models.FoodItem, error) {
	items := make([]models.FoodItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

// GetByCategories returns the items whose category matches one of categories,
// ignoring case. Catalog order is kept.
func (r *InMemoryFoodRepository) GetByCategories(ctx context.Context, categories []string) ([]models.FoodItem, error) {
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[strings.ToLower(c)] = true
	}

	items := make([]models.FoodItem, 0)
	for _, item := range r.items {
		if wanted[strings.ToLower(item.Category)] {
			items = append(items, item)
		}
	}
	return items, nil
}

// Count returns the number of items
func (r *InMemoryFoodRepository) Count() int {
	return len(r.items)
}
