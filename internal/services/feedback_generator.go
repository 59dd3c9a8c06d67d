package services

import (
	"context"
	"log"
	"strings"

	"alfredoptarigan/ai-interview/internal/models"
)

// FallbackFeedback is returned when the feedback call fails.
const FallbackFeedback = "Thank you for completing the interview. Your responses have been recorded and our team will review them shortly."

type FeedbackGenerator interface {
	// Generate issues exactly one backend call and never fails.
	Generate(ctx context.Context, interview *models.Interview) string
}

type feedbackGenerator struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	pairing       PairingPolicy
}

func NewFeedbackGenerator(generator TextGenerator, pairing PairingPolicy) FeedbackGenerator {
	return &feedbackGenerator{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		pairing:       pairing,
	}
}

func (g *feedbackGenerator) Generate(ctx context.Context, interview *models.Interview) string {
	pairs := BuildTranscript(interview.Questions, interview.Responses, g.pairing)

	feedback, err := g.generator.Generate(ctx, GenerationRequest{
		SystemInstruction: g.promptBuilder.BuildFeedbackSystemPrompt(interview.JobRole),
		Prompt:            g.promptBuilder.BuildFeedbackPrompt(interview.JobRole, pairs),
		Temperature:       0.5,
	})
	if err != nil {
		log.Printf("⚠️  Feedback generation failed for interview %s: %v", interview.ID, err)
		return FallbackFeedback
	}

	if strings.TrimSpace(feedback) == "" {
		return FallbackFeedback
	}
	return feedback
}
