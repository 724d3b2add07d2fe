package weather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/food-recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCurrent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "48.8566", q.Get("lat"))
		assert.Equal(t, "2.3522", q.Get("lon"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "secret", q.Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"main":{"temp":10.5,"humidity":80},"weather":[{"main":"Rain","description":"light rain"}],"timezone":3600}`)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, 5*time.Second, discardLogger())
	snap, err := c.Current(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, 10.5, snap.Temperature)
	assert.Equal(t, "rain", snap.Condition)
	assert.Equal(t, float64(3600), snap.Raw["timezone"])
}

func TestCurrent_NonSuccessStatusIsAbsent(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				io.WriteString(w, `{"cod":"404","message":"city not found"}`)
			}))
			defer srv.Close()

			c := NewClient("secret", srv.URL, 5*time.Second, discardLogger())
			snap, err := c.Current(context.Background(), 1, 2)
			assert.NoError(t, err)
			assert.Nil(t, snap)
		})
	}
}

func TestCurrent_TransportErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient("secret", url, time.Second, discardLogger())
	snap, err := c.Current(context.Background(), 1, 2)
	assert.Error(t, err)
	assert.Nil(t, snap)
}

func TestCurrent_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, time.Second, discardLogger())
	_, err := c.Current(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestSnapshotFromBody_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		wantTemp float64
		wantCond string
	}{
		{"empty body", map[string]any{}, models.DefaultTemperature, ""},
		{"nil body", nil, models.DefaultTemperature, ""},
		{"temp is a string", map[string]any{"main": map[string]any{"temp": "cold"}}, models.DefaultTemperature, ""},
		{"empty weather list", map[string]any{"weather": []any{}}, models.DefaultTemperature, ""},
		{"weather entry without main", map[string]any{"weather": []any{map[string]any{"id": 800.0}}}, models.DefaultTemperature, ""},
		{"only condition", map[string]any{"weather": []any{map[string]any{"main": "Clouds"}}}, models.DefaultTemperature, "clouds"},
		{"only temp", map[string]any{"main": map[string]any{"temp": -3.0}}, -3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := SnapshotFromBody(tt.raw)
			assert.Equal(t, tt.wantTemp, snap.Temperature)
			assert.Equal(t, tt.wantCond, snap.Condition)
		})
	}
}
