package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Lixing-Zhang/food-recommender/internal/models"
)

// Client fetches current conditions from an OpenWeatherMap-compatible API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a weather client. baseURL is the full current-weather
// endpoint, e.g. https://api.openweathermap.org/data/2.5/weather.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Current returns the weather at the coordinates in metric units.
// A non-200 response yields (nil, nil) so callers can fall back to defaults;
// transport and decoding failures are returned as errors.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("weather provider returned non-success status",
			"status", resp.StatusCode,
			"lat", lat,
			"lon", lon,
		)
		return nil, nil
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return SnapshotFromBody(raw), nil
}

// SnapshotFromBody extracts main.temp and weather[0].main from a provider body.
// Missing or mistyped values fall back to the defaults.
func SnapshotFromBody(raw map[string]any) *models.WeatherSnapshot {
	snap := &models.WeatherSnapshot{
		Temperature: models.DefaultTemperature,
		Condition:   models.DefaultCondition,
		Raw:         raw,
	}

	if main, ok := raw["main"].(map[string]any); ok {
		if temp, ok := main["temp"].(float64); ok {
			snap.Temperature = temp
		}
	}

	if list, ok := raw["weather"].([]any); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]any); ok {
			if cond, ok := first["main"].(string); ok {
				snap.Condition = strings.ToLower(cond)
			}
		}
	}

	return snap
}
