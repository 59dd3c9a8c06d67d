package services

import "errors"

var (
	ErrUnauthorized       = errors.New("invalid authentication credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnsupportedFormat  = errors.New("only PDF files are allowed")
	ErrFileTooLarge       = errors.New("file too large")
	ErrExtraction         = errors.New("error reading PDF")
	ErrMissingResume      = errors.New("please upload a resume first")
	ErrNoActiveInterview  = errors.New("no active interview found")
	ErrInterviewNotFound  = errors.New("interview not found")
	ErrUnknownQuestion    = errors.New("question does not belong to this interview")
	ErrQuestionAnswered   = errors.New("question already answered")
)

// GenerationError wraps any failure of the text generation backend.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed (" + e.Op + "): " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
