package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/food-recommender/internal/models"
	"github.com/Lixing-Zhang/food-recommender/internal/repository"
)

const (
	// OrderSearchPrefix starts every generated order link
	OrderSearchPrefix = "https://www.google.com/search?q="
	// DefaultLocation is used when the request has no location label
	DefaultLocation = "Your Location"

	iceCreamCategory = "ice-cream"
	coldBelowCelsius = 18.0
)

var (
	ErrMissingCoordinates = errors.New("latitude and longitude are required")
	ErrWeatherUnavailable = errors.New("weather lookup failed")
)

// mealCategories maps each meal time to the catalog categories eligible for it
var mealCategories = map[models.MealTime][]string{
	models.Breakfast: {"breads", "best-foods", "sandwiches", "drinks"},
	models.Lunch:     {"bbqs", "burgers", "pizzas", "steaks", "sausages", "fried-chicken"},
	models.Snack:     {"sandwiches", "ice-cream", "desserts", "drinks", "chocolates"},
	models.Dinner:    {"bbqs", "steaks", "porks", "burgers", "pizzas", "sandwiches"},
	models.LateNight: {"breads", "sandwiches", "drinks", "chocolates", "desserts"},
}

// MealTimeClassifier buckets the local time at a location
type MealTimeClassifier interface {
	Classify(lat, lon float64) models.MealTime
}

// WeatherProvider returns current conditions; a nil snapshot means unavailable
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error)
}

// RecommendationService handles business logic for recommendations
type RecommendationService struct {
	repo       repository.FoodRepository
	classifier MealTimeClassifier
	weather    WeatherProvider
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(repo repository.FoodRepository, classifier MealTimeClassifier, weather WeatherProvider) *RecommendationService {
	return &RecommendationService{
		repo:       repo,
		classifier: classifier,
		weather:    weather,
	}
}

// Recommend classifies the meal time, fetches the weather and filters the catalog
func (s *RecommendationService) Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, ErrMissingCoordinates
	}
	lat, lon := *req.Latitude, *req.Longitude

	mealTime := s.classifier.Classify(lat, lon)

	snapshot, err := s.weather.Current(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}

	items, err := s.repo.GetByCategories(ctx, Categories(mealTime))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	resp := &models.RecommendResponse{
		MealTime:        mealTime,
		Recommendations: Filter(mealTime, snapshot, req.Location, items),
	}
	if snapshot != nil {
		resp.Weather = snapshot.Raw
	}
	return resp, nil
}

// Filter returns the items eligible for mealTime under the given weather, each
// with an order link for location. Items keep their catalog order. A nil
// snapshot counts as 25°C with no condition.
func Filter(mealTime models.MealTime, snapshot *models.WeatherSnapshot, location string, items []models.FoodItem) []models.FoodItem {
	temp, condition := models.DefaultTemperature, models.DefaultCondition
	if snapshot != nil {
		temp, condition = snapshot.Temperature, snapshot.Condition
	}
	skipIceCream := temp < coldBelowCelsius || strings.Contains(strings.ToLower(condition), "rain")

	if location == "" {
		location = DefaultLocation
	}

	eligible := make(map[string]bool)
	for _, c := range mealCategories[mealTime] {
		eligible[c] = true
	}

	out := make([]models.FoodItem, 0)
	for _, item := range items {
		category := strings.ToLower(item.Category)
		if !eligible[category] {
			continue
		}
		if skipIceCream && category == iceCreamCategory {
			continue
		}

		item.OrderLink = OrderLink(item.Name, location)
		out = append(out, item)
	}
	return out
}

// Categories returns the categories eligible for a meal time
func Categories(mealTime models.MealTime) []string {
	categories := mealCategories[mealTime]
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// OrderLink builds a search link for ordering dish near location
func OrderLink(dish, location string) string {
	query := fmt.Sprintf("order %s in %s",
		strings.ReplaceAll(dish, " ", "+"),
		strings.ReplaceAll(location, " ", "+"),
	)
	return OrderSearchPrefix + query
}
