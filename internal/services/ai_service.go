package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	apperrors "github.com/vladimiradmaev/recipe-helper/internal/errors"
	"github.com/vladimiradmaev/recipe-helper/internal/logger"
	"google.golang.org/api/option"
)

const ingredientsPrompt = `You are a kitchen assistant. Extract the shopping ingredients from the user's text.

REQUIREMENTS:
- Product names must be in Russian, lower case, singular where natural
- Quantity must be a positive number
- Units must be short Russian units: "грамм", "кг", "мл", "л", "шт.", "ст. л.", "ч. л."
- If no unit is given, use "шт."

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any explanatory text before or after the JSON
- The JSON must have this exact shape:
  {
    "ingredients": [{"product": "яйцо", "quantity": 2, "unit": "шт."}]
  }

TEXT:
%s`

type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
}

type ingredientsResult struct {
	Ingredients []IngredientInput `json:"ingredients"`
}

// NewAIService creates clients for the configured providers; empty keys
// disable a provider.
func NewAIService(ctx context.Context, geminiAPIKey, openaiAPIKey string) (*AIService, error) {
	s := &AIService{}
	if geminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(geminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
	}
	if openaiAPIKey != "" {
		s.openaiClient = openai.NewClient(openaiAPIKey)
	}
	return s, nil
}

// ParseIngredients understands the simple line format locally and asks an
// AI provider only for free-form text.
func (s *AIService) ParseIngredients(ctx context.Context, text string) ([]IngredientInput, error) {
	parsed, localErr := ParseIngredientText(text)
	if localErr == nil {
		return parsed, nil
	}
	if s == nil || (s.geminiClient == nil && s.openaiClient == nil) {
		return nil, localErr
	}

	if s.geminiClient != nil {
		parsed, err := s.parseWithGemini(ctx, text)
		if err == nil {
			return parsed, nil
		}
		logger.Warn("Gemini ingredient parsing failed", "error", err)
	}
	if s.openaiClient != nil {
		parsed, err := s.parseWithOpenAI(ctx, text)
		if err == nil {
			return parsed, nil
		}
		return nil, apperrors.NewExternalAPIError(err, "openai")
	}
	return nil, apperrors.NewExternalAPIError(localErr, "gemini")
}

func (s *AIService) parseWithGemini(ctx context.Context, text string) ([]IngredientInput, error) {
	model := s.geminiClient.GenerativeModel("gemini-1.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(ingredientsPrompt, text)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	responseText, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part %T", resp.Candidates[0].Content.Parts[0])
	}
	return decodeIngredients(string(responseText))
}

func (s *AIService) parseWithOpenAI(ctx context.Context, text string) ([]IngredientInput, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(ingredientsPrompt, text),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	return decodeIngredients(resp.Choices[0].Message.Content)
}

// decodeIngredients parses the model output and drops lines the domain would reject.
func decodeIngredients(raw string) ([]IngredientInput, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}
	var result ingredientsResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	out := make([]IngredientInput, 0, len(result.Ingredients))
	for _, in := range result.Ingredients {
		if in.Unit == "" {
			in.Unit = defaultUnit
		}
		if _, err := in.ToDomain(); err != nil {
			logger.Warn("Skipping invalid AI ingredient", "product", in.Product, "quantity", in.Quantity)
			continue
		}
		out = append(out, in)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no ingredients in response")
	}
	return out, nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// Close releases provider clients.
func (s *AIService) Close() error {
	if s.geminiClient != nil {
		return s.geminiClient.Close()
	}
	return nil
}
