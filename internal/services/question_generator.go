package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/ai-interview/internal/models"
)

const (
	minGeneratedQuestions = 3
	maxHighlightChars     = 1500
	defaultTopic          = "general"
)

// fallbackNamespace seeds the UUIDv5 identities of fallback questions.
var fallbackNamespace = uuid.MustParse("6f1c3c1e-52a4-4c36-9d3a-3c1f0d9b7a10")

const questionListSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["question"],
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "type": {"type": "string"},
      "topic": {"type": "string"}
    }
  }
}`

var questionSchemaLoader = gojsonschema.NewStringLoader(questionListSchema)

type QuestionInput struct {
	ResumeText      string
	Highlights      string
	JobRole         string
	ExperienceLevel string
}

type QuestionGenerator interface {
	// Generate never fails: any backend error or unusable output yields the
	// fallback set for the job role.
	Generate(ctx context.Context, in QuestionInput) []models.Question
}

type questionGenerator struct {
	generator      TextGenerator
	promptBuilder  *PromptBuilder
	maxResumeChars int
	maxQuestions   int
}

func NewQuestionGenerator(generator TextGenerator, maxResumeChars, maxQuestions int) QuestionGenerator {
	if maxResumeChars <= 0 {
		maxResumeChars = 3000
	}
	if maxQuestions < minGeneratedQuestions {
		maxQuestions = 7
	}
	return &questionGenerator{
		generator:      generator,
		promptBuilder:  NewPromptBuilder(),
		maxResumeChars: maxResumeChars,
		maxQuestions:   maxQuestions,
	}
}

func (g *questionGenerator) Generate(ctx context.Context, in QuestionInput) []models.Question {
	resumeText := TruncateRunes(in.ResumeText, g.maxResumeChars)
	highlights := TruncateRunes(in.Highlights, maxHighlightChars)

	structured, isStructured := g.generator.(StructuredGenerator)

	req := GenerationRequest{
		SystemInstruction: g.promptBuilder.BuildQuestionSystemPrompt(in.JobRole, in.ExperienceLevel, isStructured),
		Prompt:            g.promptBuilder.BuildQuestionPrompt(resumeText, highlights, in.JobRole, in.ExperienceLevel),
		Temperature:       0.7,
	}

	var (
		raw string
		err error
	)
	if isStructured {
		raw, err = structured.GenerateJSON(ctx, req)
	} else {
		raw, err = g.generator.Generate(ctx, req)
	}
	if err != nil {
		log.Printf("⚠️  Question generation failed, using fallback set: %v", err)
		return FallbackQuestions(in.JobRole)
	}

	var questions []models.Question
	if isStructured {
		questions, err = ParseStructuredQuestions(raw, g.maxQuestions)
		if err != nil {
			// JSON that fails the schema is unusable; lines of it are not questions.
			if json.Valid([]byte(extractJSON(raw))) {
				log.Printf("⚠️  Structured questions rejected, using fallback set: %v", err)
				return FallbackQuestions(in.JobRole)
			}
			log.Printf("⚠️  Reply is not JSON, parsing lines: %v", err)
			questions = ParseQuestionLines(raw, g.maxQuestions)
		}
	} else {
		questions = ParseQuestionLines(raw, g.maxQuestions)
	}

	if len(questions) < minGeneratedQuestions {
		log.Printf("⚠️  Only %d questions parsed, using fallback set", len(questions))
		return FallbackQuestions(in.JobRole)
	}

	return questions
}

// ParseQuestionLines turns every trimmed, non-empty line that is not a
// heading into a question. Categories alternate technical/behavioral.
func ParseQuestionLines(raw string, max int) []models.Question {
	var questions []models.Question
	for _, line := range strings.Split(raw, "\n") {
		if len(questions) >= max {
			break
		}
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		questions = append(questions, models.Question{
			ID:       uuid.New().String(),
			Question: text,
			Type:     alternatingType(len(questions)),
			Topic:    defaultTopic,
		})
	}
	return questions
}

type structuredQuestion struct {
	Question string `json:"question"`
	Type     string `json:"type"`
	Topic    string `json:"topic"`
}

// ParseStructuredQuestions decodes a JSON question list, either a bare array
// or an object with a "questions" array, and validates it against the
// question list schema.
func ParseStructuredQuestions(raw string, max int) ([]models.Question, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if obj, ok := doc.(map[string]interface{}); ok {
		list, ok := obj["questions"]
		if !ok {
			return nil, fmt.Errorf("JSON object has no questions field")
		}
		doc = list
	}

	result, err := gojsonschema.Validate(questionSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to validate questions: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode questions: %w", err)
	}
	var items []structuredQuestion
	if err := json.Unmarshal(encoded, &items); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	questions := make([]models.Question, 0, min(len(items), max))
	for _, item := range items {
		if len(questions) >= max {
			break
		}
		text := strings.TrimSpace(item.Question)
		if text == "" {
			continue
		}

		qType := models.QuestionType(strings.ToLower(strings.TrimSpace(item.Type)))
		if qType != models.QuestionTechnical && qType != models.QuestionBehavioral {
			qType = alternatingType(len(questions))
		}

		topic := strings.TrimSpace(item.Topic)
		if topic == "" {
			topic = defaultTopic
		}

		questions = append(questions, models.Question{
			ID:       uuid.New().String(),
			Question: text,
			Type:     qType,
			Topic:    topic,
		})
	}
	return questions, nil
}

// FallbackQuestions is the fixed question set for a job role. Identities are
// derived from the role and position, so the result is identical across calls.
func FallbackQuestions(jobRole string) []models.Question {
	templates := []struct {
		text  string
		qType models.QuestionType
		topic string
	}{
		{"Tell me about your experience with {role} technologies.", models.QuestionTechnical, "experience"},
		{"Walk me through a challenging project you've worked on.", models.QuestionBehavioral, "projects"},
		{"How do you stay updated with the latest trends in {role}?", models.QuestionBehavioral, "learning"},
		{"Describe a time when you had to solve a complex technical problem.", models.QuestionTechnical, "problem-solving"},
		{"What interests you most about working as a {role}?", models.QuestionBehavioral, "motivation"},
	}

	questions := make([]models.Question, 0, len(templates))
	for i, t := range templates {
		questions = append(questions, models.Question{
			ID:       uuid.NewSHA1(fallbackNamespace, []byte(fmt.Sprintf("%d:%s", i, jobRole))).String(),
			Question: strings.ReplaceAll(t.text, "{role}", jobRole),
			Type:     t.qType,
			Topic:    t.topic,
		})
	}
	return questions
}

func alternatingType(position int) models.QuestionType {
	if position%2 == 0 {
		return models.QuestionTechnical
	}
	return models.QuestionBehavioral
}

// extractJSON strips markdown fences and returns the outermost JSON array or
// object, whichever opens first.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	arrayFirst := startArr != -1 && (startObj == -1 || startArr < startObj)
	if arrayFirst && endArr > startArr {
		return text[startArr : endArr+1]
	}
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}
