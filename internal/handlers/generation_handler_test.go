package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/food-recommender/internal/generation"
	"github.com/Lixing-Zhang/food-recommender/internal/service"
	"github.com/Lixing-Zhang/food-recommender/pkg/logger"
)

// newGenerationHandler wires the real client against a fake provider.
// A nil provider handler leaves the provider unreachable.
func newGenerationHandler(t *testing.T, provider http.HandlerFunc) *GenerationHandler {
	t.Helper()
	log := logger.New("error")

	srv := httptest.NewServer(provider)
	baseURL := srv.URL
	if provider == nil {
		srv.Close()
	} else {
		t.Cleanup(srv.Close)
	}

	client := generation.NewClient("llm-key", baseURL, "sonar-pro", 5*time.Second, log)
	return NewGenerationHandler(service.NewContentService(client), log)
}

func completion(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generation.ChatResponse{
			Choices: []generation.Choice{{Message: generation.Message{Role: "assistant", Content: content}}},
		})
	}
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestGenerateRecipe_Success(t *testing.T) {
	text := `{"steps": "<ol><li>Stretch the dough</li></ol>", "video_link": "https://www.youtube.com/watch?v=abc"}`
	handler := newGenerationHandler(t, completion(text))

	w := postJSON(t, handler.GenerateRecipe, "/generate_recipe", `{"food_name": "Pizza"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := decodeMap(t, w)["recipe"]; got != text {
		t.Errorf("expected raw recipe text, got %q", got)
	}
}

func TestGenerateRecipe_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name     string
		provider http.HandlerFunc
	}{
		{"unreachable", nil},
		{"provider error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"malformed response", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `<html>`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newGenerationHandler(t, tt.provider)

			w := postJSON(t, handler.GenerateRecipe, "/generate_recipe", `{"food_name": "Pizza"}`)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", w.Code)
			}
			if got := decodeMap(t, w)["error"]; got != "API request failed" {
				t.Errorf("expected 'API request failed', got %q", got)
			}
		})
	}
}

func TestGenerateDescription_TextMentioningErrorIsSuccess(t *testing.T) {
	text := `{"description": "Error-proof fudge that never fails to impress."}`
	handler := newGenerationHandler(t, completion(text))

	w := postJSON(t, handler.GenerateDescription, "/generate_description", `{"food_name": "Fudge"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := decodeMap(t, w)["description"]; got != text {
		t.Errorf("expected raw description text, got %q", got)
	}
}

func TestGenerateDescription_UpstreamFailure(t *testing.T) {
	handler := newGenerationHandler(t, nil)

	w := postJSON(t, handler.GenerateDescription, "/generate_description", `{"food_name": "Fudge"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if got := decodeMap(t, w)["error"]; got != "API request failed" {
		t.Errorf("expected 'API request failed', got %q", got)
	}
}

func TestGeneration_InvalidInput(t *testing.T) {
	handler := newGenerationHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for invalid input")
	})

	testCases := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"malformed", `{"food_name":`},
		{"missing food_name", `{}`},
		{"blank food_name", `{"food_name": "   "}`},
		{"wrong type", `{"food_name": 42}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for path, h := range map[string]http.HandlerFunc{
				"/generate_recipe":      handler.GenerateRecipe,
				"/generate_description": handler.GenerateDescription,
			} {
				w := postJSON(t, h, path, tc.body)
				if w.Code != http.StatusBadRequest {
					t.Errorf("%s: expected status 400, got %d", path, w.Code)
				}
			}
		})
	}
}
