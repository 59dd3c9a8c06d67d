package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

type GeminiService interface {
	StructuredGenerator
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, model, embedModel string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  model,
		embedModel: embedModel,
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// The embedding model accepts roughly 10k tokens.
	text = TruncateRunes(text, 10000)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, &GenerationError{Op: "embed", Err: err}
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, &GenerationError{Op: "embed", Err: errors.New("empty embedding result")}
	}

	return result.Embeddings[0].Values, nil
}

// Generate implements TextGenerator.
func (g *geminiService) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	return g.generate(ctx, req, "")
}

// GenerateJSON implements StructuredGenerator.
func (g *geminiService) GenerateJSON(ctx context.Context, req GenerationRequest) (string, error) {
	return g.generate(ctx, req, "application/json")
}

func (g *geminiService) generate(ctx context.Context, req GenerationRequest, mimeType string) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: mimeType,
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.Prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", &GenerationError{Op: "generate", Err: err}
	}

	if resp == nil {
		return "", &GenerationError{Op: "generate", Err: errors.New("nil response")}
	}

	text := resp.Text()
	if text == "" {
		return "", &GenerationError{Op: "generate", Err: errors.New("no text content in response")}
	}

	log.Printf("📊 Gemini response received: %d characters", len(text))
	return text, nil
}
