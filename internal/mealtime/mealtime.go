package mealtime

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone names from tzf must load on hosts without a zoneinfo database

	"github.com/Lixing-Zhang/food-recommender/internal/models"
	"github.com/ringsaturn/tzf"
)

// Resolver maps coordinates to an IANA timezone name.
// An empty result means the zone could not be determined.
type Resolver interface {
	TimezoneName(lat, lon float64) string
}

// Classifier buckets the current local time at a location into a meal time
type Classifier struct {
	resolver Resolver
	now      func() time.Time
}

// NewClassifier creates a classifier. A nil clock uses time.Now.
func NewClassifier(resolver Resolver, now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{
		resolver: resolver,
		now:      now,
	}
}

// Classify returns the meal time at the given coordinates right now.
// Unresolvable coordinates are classified in UTC.
func (c *Classifier) Classify(lat, lon float64) models.MealTime {
	return ForTime(c.now().In(c.Location(lat, lon)))
}

// Location returns the timezone for the coordinates, UTC when unknown
func (c *Classifier) Location(lat, lon float64) *time.Location {
	if c.resolver == nil {
		return time.UTC
	}
	name := c.resolver.TimezoneName(lat, lon)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ForTime buckets a wall-clock time. Seconds are ignored so every minute of
// the day falls in exactly one bucket.
func ForTime(t time.Time) models.MealTime {
	minutes := t.Hour()*60 + t.Minute()

	switch {
	case minutes >= clock(5, 0) && minutes <= clock(10, 59):
		return models.Breakfast
	case minutes >= clock(11, 0) && minutes <= clock(14, 59):
		return models.Lunch
	case minutes >= clock(15, 0) && minutes <= clock(17, 59):
		return models.Snack
	case minutes >= clock(18, 0) && minutes <= clock(21, 59):
		return models.Dinner
	default:
		return models.LateNight
	}
}

func clock(h, m int) int {
	return h*60 + m
}

// TZFResolver resolves timezones offline from bundled boundary polygons
type TZFResolver struct {
	finder tzf.F
}

// NewTZFResolver builds the default tzf finder. This loads the boundary
// data into memory and should happen once at startup.
func NewTZFResolver() (*TZFResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone finder: %w", err)
	}
	return &TZFResolver{finder: finder}, nil
}

// TimezoneName implements Resolver
func (r *TZFResolver) TimezoneName(lat, lon float64) string {
	return r.finder.GetTimezoneName(lon, lat)
}

// FixedResolver always returns the same zone name
type FixedResolver string

// TimezoneName implements Resolver
func (f FixedResolver) TimezoneName(lat, lon float64) string {
	return string(f)
}
