package models

// MealTime is the time-of-day bucket used to pick eligible categories
type MealTime string

const (
	Breakfast MealTime = "breakfast"
	Lunch     MealTime = "lunch"
	Snack     MealTime = "snack"
	Dinner    MealTime = "dinner"
	LateNight MealTime = "late-night"
)

// MealTimes lists every bucket in day order
var MealTimes = []MealTime{Breakfast, Lunch, Snack, Dinner, LateNight}
