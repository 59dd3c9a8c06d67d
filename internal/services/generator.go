package services

import (
	"context"
	"errors"
)

type GenerationRequest struct {
	// SystemInstruction frames the model's role.
	SystemInstruction string
	Prompt            string
	Temperature       float32
}

// TextGenerator is the external text generation capability. Implementations
// return a *GenerationError on failure.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// StructuredGenerator is implemented by backends that can constrain output
// to JSON.
type StructuredGenerator interface {
	TextGenerator
	GenerateJSON(ctx context.Context, req GenerationRequest) (string, error)
}

// UnavailableGenerator always fails. It is used when no backend is
// configured so that the generators fall back deterministically.
type UnavailableGenerator struct{}

func (UnavailableGenerator) Generate(context.Context, GenerationRequest) (string, error) {
	return "", &GenerationError{Op: "generate", Err: errors.New("text generation backend not configured")}
}
