package models

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      UserResponse `json:"user"`
}

type UploadResumeResponse struct {
	Message  string `json:"message"`
	ResumeID string `json:"resume_id"`
	Preview  string `json:"preview"`
}

type StartInterviewRequest struct {
	JobRole         string `json:"job_role" validate:"required"`
	ExperienceLevel string `json:"experience_level" validate:"required"`
	InterviewType   string `json:"interview_type" validate:"omitempty,oneof=text voice"`
}

type StartInterviewResponse struct {
	InterviewID    string     `json:"interview_id"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type SubmitResponseRequest struct {
	InterviewID string `json:"interview_id" validate:"omitempty,uuid"`
	QuestionID  string `json:"question_id" validate:"required"`
	Answer      string `json:"answer" validate:"required"`
}

type SubmitResponseResult struct {
	Message      string  `json:"message"`
	InterviewID  string  `json:"interview_id"`
	Completed    bool    `json:"completed"`
	Feedback     *string `json:"feedback,omitempty"`
	NextQuestion *int    `json:"next_question,omitempty"`
}

type InterviewHistoryResponse struct {
	Interviews []Interview `json:"interviews"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
