package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/ai-interview/internal/models"
)

const noAnswerPlaceholder = "(no answer provided)"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionSystemPrompt frames the interviewer persona for question generation.
func (pb *PromptBuilder) BuildQuestionSystemPrompt(jobRole, experienceLevel string, structured bool) string {
	format := `Return one question per line. Do not number the questions and do not add headings or commentary.`
	if structured {
		format = `Return a JSON array of objects with "question", "type" (technical or behavioral) and "topic" fields.`
	}

	return fmt.Sprintf(`You are an expert technical interviewer conducting interviews for %s positions at %s level.
Based on the candidate's resume, generate 5-7 relevant interview questions that cover:
1. Technical skills mentioned in the resume
2. Projects and experience
3. Problem-solving abilities
4. Role-specific knowledge

%s`, jobRole, experienceLevel, format)
}

// BuildQuestionPrompt creates the content payload for question generation.
// highlights may be empty.
func (pb *PromptBuilder) BuildQuestionPrompt(resumeText, highlights, jobRole, experienceLevel string) string {
	var b strings.Builder
	b.WriteString("Resume Content: ")
	b.WriteString(resumeText)
	b.WriteString("\n\n")
	if highlights != "" {
		b.WriteString("Resume Highlights Relevant To The Role:\n")
		b.WriteString(highlights)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Job Role: %s\nExperience Level: %s\n\n", jobRole, experienceLevel)
	b.WriteString("Generate appropriate interview questions based on this resume and role.")
	return b.String()
}

// BuildFeedbackSystemPrompt frames the reviewer persona for feedback generation.
func (pb *PromptBuilder) BuildFeedbackSystemPrompt(jobRole string) string {
	return fmt.Sprintf(`You are an expert interviewer providing detailed feedback for a %s interview.
Analyze the candidate's responses and provide constructive feedback covering:
1. Strengths demonstrated
2. Areas for improvement
3. Technical knowledge assessment
4. Communication skills
5. Overall interview performance
6. Specific recommendations for improvement

Provide a comprehensive but concise feedback report.`, jobRole)
}

// BuildFeedbackPrompt wraps a transcript in the feedback request.
func (pb *PromptBuilder) BuildFeedbackPrompt(jobRole string, pairs []QAPair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job Role: %s\n\n", jobRole)
	b.WriteString("Interview Questions and Responses:\n\n")
	for i, p := range pairs {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, p.Question)
		fmt.Fprintf(&b, "A%d: %s\n\n", i+1, p.Answer)
	}
	b.WriteString("\nProvide detailed feedback on this interview performance.")
	return b.String()
}

func (pb *PromptBuilder) BuildRetrievalQuery(jobRole, experienceLevel string) string {
	return fmt.Sprintf("Experience, projects and skills relevant to a %s role at %s level", jobRole, experienceLevel)
}

type QAPair struct {
	Question string
	Answer   string
}

type PairingPolicy string

const (
	// PairPositional pairs the n-th question with the n-th response; the
	// shorter list decides the number of pairs.
	PairPositional PairingPolicy = "positional"
	// PairByQuestionID pairs every question with the response carrying its
	// identity. Unanswered questions get a placeholder answer.
	PairByQuestionID PairingPolicy = "question_id"
)

// ParsePairingPolicy maps a config value to a policy, defaulting to PairByQuestionID.
func ParsePairingPolicy(s string) PairingPolicy {
	if PairingPolicy(strings.ToLower(strings.TrimSpace(s))) == PairPositional {
		return PairPositional
	}
	return PairByQuestionID
}

// BuildTranscript pairs questions and responses under the given policy.
func BuildTranscript(questions []models.Question, responses []models.Response, policy PairingPolicy) []QAPair {
	if policy == PairPositional {
		n := min(len(questions), len(responses))
		pairs := make([]QAPair, 0, n)
		for i := 0; i < n; i++ {
			pairs = append(pairs, QAPair{Question: questions[i].Question, Answer: responses[i].Answer})
		}
		return pairs
	}

	answers := make(map[string]string, len(responses))
	for _, r := range responses {
		if _, seen := answers[r.QuestionID]; !seen {
			answers[r.QuestionID] = r.Answer
		}
	}

	pairs := make([]QAPair, 0, len(questions))
	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok {
			answer = noAnswerPlaceholder
		}
		pairs = append(pairs, QAPair{Question: q.Question, Answer: answer})
	}
	return pairs
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Preview returns the first n runes of s, suffixed with "..." when cut.
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return TruncateRunes(s, n) + "..."
}
