package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-interview/internal/models"
)

func feedbackInterview() *models.Interview {
	return &models.Interview{
		JobRole: "Software Engineer",
		Questions: []models.Question{
			{ID: "q1", Question: "What is Go?"},
			{ID: "q2", Question: "What is a channel?"},
			{ID: "q3", Question: "Why do you want this job?"},
		},
		Responses: []models.Response{
			{QuestionID: "q2", Answer: "A typed conduit."},
			{QuestionID: "q1", Answer: "A language."},
		},
	}
}

func TestFeedbackPairsByQuestionID(t *testing.T) {
	backend := &scriptedGenerator{reply: "Solid fundamentals."}
	gen := NewFeedbackGenerator(backend, PairByQuestionID)

	feedback := gen.Generate(context.Background(), feedbackInterview())

	assert.Equal(t, "Solid fundamentals.", feedback)
	prompt := backend.lastRequest().Prompt
	assert.Contains(t, prompt, "Q1: What is Go?\nA1: A language.")
	assert.Contains(t, prompt, "Q2: What is a channel?\nA2: A typed conduit.")
	assert.Contains(t, prompt, "Q3: Why do you want this job?\nA3: (no answer provided)")
}

func TestFeedbackPairsPositionally(t *testing.T) {
	backend := &scriptedGenerator{reply: "ok"}
	gen := NewFeedbackGenerator(backend, PairPositional)

	gen.Generate(context.Background(), feedbackInterview())

	prompt := backend.lastRequest().Prompt
	assert.Contains(t, prompt, "Q1: What is Go?\nA1: A typed conduit.")
	assert.Contains(t, prompt, "Q2: What is a channel?\nA2: A language.")
	assert.NotContains(t, prompt, "Q3:")
}

func TestFeedbackReturnsTextVerbatim(t *testing.T) {
	backend := &scriptedGenerator{reply: "  **Strengths**\n- clear answers\n"}
	gen := NewFeedbackGenerator(backend, PairByQuestionID)

	assert.Equal(t, "  **Strengths**\n- clear answers\n", gen.Generate(context.Background(), feedbackInterview()))
	assert.Contains(t, backend.lastRequest().SystemInstruction, "Software Engineer")
}

func TestFeedbackFallback(t *testing.T) {
	tests := []struct {
		name    string
		backend TextGenerator
	}{
		{"backend error", &scriptedGenerator{err: errBackendDown}},
		{"blank reply", &scriptedGenerator{reply: " \n "}},
		{"unavailable", UnavailableGenerator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewFeedbackGenerator(tt.backend, PairByQuestionID)
			require.Equal(t, FallbackFeedback, gen.Generate(context.Background(), feedbackInterview()))
		})
	}
}
