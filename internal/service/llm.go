package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

var (
	// ErrMissingAPIKey is returned before any network call when no model credential is configured
	ErrMissingAPIKey = errors.New("OpenAI API key is not set")
	// ErrMissingEndpoint is returned before any network call when no model endpoint is configured
	ErrMissingEndpoint = errors.New("OpenAI API endpoint is not set")
)

const recipeSystemPrompt = "You are a helpful assistant that suggests recipes based on available food ingredients. " +
	"NOTE: Do not give any helper statements or any text formatting, give me only the content needed."

// Message represents a message in the chat. Content is either a string or a
// slice of ContentPart for multimodal input.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is a text or image_url block of a multimodal message
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps an image reference
type ImageURL struct {
	URL string `json:"url"`
}

// Request represents a request to the chat-completions API
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService proxies the vision and recipe prompts to an OpenAI-compatible
// chat-completions endpoint. No retry or timeout is configured locally.
type LLMService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewLLMService creates a new LLMService instance. Empty apiKey or baseURL
// are accepted here and reported by each call.
func NewLLMService(apiKey, baseURL, model string) *LLMService {
	return &LLMService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

// Ready reports a configuration error when the credential or endpoint is missing
func (s *LLMService) Ready() error {
	if s.apiKey == "" {
		return ErrMissingAPIKey
	}
	if s.baseURL == "" {
		return ErrMissingEndpoint
	}
	return nil
}

// Classify asks the model to name the most relevant food item in the image,
// preferring an exact name from inventoryNames. The reply is returned verbatim.
func (s *LLMService) Classify(ctx context.Context, imageURL string, inventoryNames []string) (string, error) {
	messages := []Message{
		{
			Role: "user",
			Content: []ContentPart{
				{Type: "text", Text: BuildVisionPrompt(inventoryNames)},
				{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
			},
		},
	}
	return s.complete(ctx, messages)
}

// SuggestRecipe asks the model for a recipe using some or all of inventoryNames.
// The reply is returned verbatim; see ParseRecipe for its structure.
func (s *LLMService) SuggestRecipe(ctx context.Context, inventoryNames []string) (string, error) {
	messages := []Message{
		{Role: "system", Content: recipeSystemPrompt},
		{Role: "user", Content: BuildRecipePrompt(inventoryNames)},
	}
	return s.complete(ctx, messages)
}

// BuildVisionPrompt renders the ranked-priority classification prompt
func BuildVisionPrompt(inventoryNames []string) string {
	return `Please analyze the attached image and identify prominent items with a priority on the following:
1. First, focus on identifying food items.
2. Next, look for items related to food, such as packaged food and food accessories.
3. Finally, identify items used with food, such as cooking tools, eating utensils, and serving dishes.
Cross-reference detected items with the following list: ` + strings.Join(inventoryNames, ", ") + `.
Return the exact item name from the list if a match is found, maintaining case sensitivity.
If the item is related to the food industry but not on the list, return its name.
If the item is not related to the food industry, do not return anything.
The resultant response should be a single item without classification in order of preference.
If there is nothing to return or you're unable to analyze the image, return 'none'.`
}

// BuildRecipePrompt renders the recipe-generation user prompt
func BuildRecipePrompt(inventoryNames []string) string {
	return fmt.Sprintf("Some of the following items are food items, %s. Filter them and suggest a recipe using some or all of those ingredients. "+
		"Provide the recipe name, ingredients list, and step-by-step instructions.", strings.Join(inventoryNames, ", "))
}

func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}

	jsonData, err := json.Marshal(Request{Model: s.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLMService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// An empty choice list yields an empty reply, which callers treat as
	// "no detection" or a failed recipe.
	if len(result.Choices) == 0 {
		log.Printf("[LLMService] API returned no choices")
		return "", nil
	}

	return result.Choices[0].Message.Content, nil
}
