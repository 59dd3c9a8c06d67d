package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InterviewStatus string

const (
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

type QuestionType string

const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
)

// Question is embedded in its interview and never changes after creation.
type Question struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Topic    string       `json:"topic"`
}

type Response struct {
	QuestionID  string    `json:"question_id"`
	Answer      string    `json:"answer"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Interview struct {
	ID              uuid.UUID                     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID                     `gorm:"type:uuid;not null;index:idx_interviews_user_status,priority:1" json:"user_id"`
	JobRole         string                        `gorm:"type:text" json:"job_role"`
	ExperienceLevel string                        `gorm:"type:text" json:"experience_level"`
	InterviewType   string                        `gorm:"type:text" json:"interview_type"`
	Status          InterviewStatus               `gorm:"not null;default:'in_progress';index:idx_interviews_user_status,priority:2" json:"status"`
	Questions       datatypes.JSONSlice[Question] `gorm:"not null" json:"questions"`
	Responses       datatypes.JSONSlice[Response] `gorm:"not null" json:"responses"`
	Feedback        *string                       `gorm:"type:text" json:"feedback"`
	CreatedAt       time.Time                     `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	CompletedAt     *time.Time                    `json:"completed_at,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}

// HasQuestion reports whether id names one of the interview's questions.
func (i *Interview) HasQuestion(id string) bool {
	for _, q := range i.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

func (i *Interview) Answered(questionID string) bool {
	for _, r := range i.Responses {
		if r.QuestionID == questionID {
			return true
		}
	}
	return false
}

// IsComplete is the sole completion trigger: every question has a response.
func (i *Interview) IsComplete() bool {
	return len(i.Responses) >= len(i.Questions)
}
