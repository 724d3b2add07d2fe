package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyFoodName = errors.New("food name is required")

// Completer returns generated text for a prompt
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ContentService generates recipe and description text for a dish
type ContentService struct {
	completer Completer
}

// NewContentService creates a new content service
func NewContentService(completer Completer) *ContentService {
	return &ContentService{
		completer: completer,
	}
}

// GenerateRecipe asks for a JSON object with "steps" (an HTML ordered list) and
// "video_link". The text is returned as generated.
func (s *ContentService) GenerateRecipe(ctx context.Context, foodName string) (string, error) {
	if strings.TrimSpace(foodName) == "" {
		return "", ErrEmptyFoodName
	}
	return s.completer.Complete(ctx, RecipePrompt(foodName))
}

// GenerateDescription asks for a JSON object with a "description" key
func (s *ContentService) GenerateDescription(ctx context.Context, foodName string) (string, error) {
	if strings.TrimSpace(foodName) == "" {
		return "", ErrEmptyFoodName
	}
	return s.completer.Complete(ctx, DescriptionPrompt(foodName))
}

func RecipePrompt(foodName string) string {
	return fmt.Sprintf("You are a professional chef assistant. The user has provided the food name: %s. "+
		"Please return a JSON object with keys 'steps' and 'video_link'. "+
		"The value of 'steps' should be an HTML string containing the step-by-step instructions formatted as an ordered list (<ol><li>Step 1</li>...</ol>). "+
		"The 'video_link' should be a single YouTube URL with no extra text, references, or formatting.", foodName)
}

func DescriptionPrompt(foodName string) string {
	return fmt.Sprintf("Write a delicious description for %s in json format with key 'description' without any reference number, formatting etc.", foodName)
}
