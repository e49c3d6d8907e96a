package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

func NewGeminiService(apiKey, modelName string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		temperature: 0.3,
	}, nil
}

// GenerateJSON implements GeminiService. The model is asked for
// application/json output; the raw response text is returned unparsed.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	log.Printf("📊 Gemini response received: %d characters", len(text))
	return text, nil
}
