package models

// RecommendRequest is the body of POST /recommend.
// Coordinates are pointers so an absent value can be told apart from 0.
type RecommendRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Location  string   `json:"location,omitempty"`
}

// RecommendResponse is the body returned by POST /recommend
type RecommendResponse struct {
	MealTime        MealTime       `json:"mealtime"`
	Weather         map[string]any `json:"weather"`
	Recommendations []FoodItem     `json:"recommendations"`
}

// GenerateRequest is the body of the two generation endpoints
type GenerateRequest struct {
	FoodName string `json:"food_name" validate:"required"`
}

// RecipeResponse is the body returned by POST /generate_recipe
type RecipeResponse struct {
	Recipe string `json:"recipe"`
}

// DescriptionResponse is the body returned by POST /generate_description
type DescriptionResponse struct {
	Description string `json:"description"`
}
