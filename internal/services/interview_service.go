package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/repositories"
)

const defaultInterviewType = "text"

type InterviewService interface {
	Start(ctx context.Context, userID uuid.UUID, req *models.StartInterviewRequest) (*models.StartInterviewResponse, error)
	SubmitResponse(ctx context.Context, userID uuid.UUID, req *models.SubmitResponseRequest) (*models.SubmitResponseResult, error)
	History(userID uuid.UUID) ([]models.Interview, error)
	Get(userID, interviewID uuid.UUID) (*models.Interview, error)
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	resumeRepo    repositories.ResumeRepository
	questions     QuestionGenerator
	feedback      FeedbackGenerator
	index         ResumeIndex
	historyLimit  int
	now           func() time.Time
}

// NewInterviewService wires the interview flow. index may be nil when the
// vector index is disabled.
func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	resumeRepo repositories.ResumeRepository,
	questions QuestionGenerator,
	feedback FeedbackGenerator,
	index ResumeIndex,
	historyLimit int,
) InterviewService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &interviewService{
		interviewRepo: interviewRepo,
		resumeRepo:    resumeRepo,
		questions:     questions,
		feedback:      feedback,
		index:         index,
		historyLimit:  historyLimit,
		now:           time.Now,
	}
}

func (s *interviewService) Start(ctx context.Context, userID uuid.UUID, req *models.StartInterviewRequest) (*models.StartInterviewResponse, error) {
	resume, err := s.resumeRepo.FindLatestByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMissingResume
		}
		return nil, err
	}

	var highlights string
	if s.index != nil {
		highlights, err = s.index.Highlights(ctx, resume, req.JobRole, req.ExperienceLevel)
		if err != nil {
			log.Printf("⚠️  Resume highlights unavailable for %s: %v", resume.ID, err)
			highlights = ""
		}
	}

	questions := s.questions.Generate(ctx, QuestionInput{
		ResumeText:      resume.TextContent,
		Highlights:      highlights,
		JobRole:         req.JobRole,
		ExperienceLevel: req.ExperienceLevel,
	})

	interviewType := req.InterviewType
	if interviewType == "" {
		interviewType = defaultInterviewType
	}

	interview := &models.Interview{
		UserID:          userID,
		JobRole:         req.JobRole,
		ExperienceLevel: req.ExperienceLevel,
		InterviewType:   interviewType,
		Status:          models.StatusInProgress,
		Questions:       datatypes.JSONSlice[models.Question](questions),
		Responses:       datatypes.JSONSlice[models.Response]{},
		CreatedAt:       s.now(),
	}
	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, err
	}

	log.Printf("✅ Interview %s started with %d questions", interview.ID, len(questions))

	return &models.StartInterviewResponse{
		InterviewID:    interview.ID.String(),
		Questions:      questions,
		TotalQuestions: len(questions),
	}, nil
}

func (s *interviewService) SubmitResponse(ctx context.Context, userID uuid.UUID, req *models.SubmitResponseRequest) (*models.SubmitResponseResult, error) {
	interviewID, err := s.resolveTarget(userID, req.InterviewID)
	if err != nil {
		return nil, err
	}

	// completedNow is only set by the call that performs the transition.
	completedNow := false
	interview, err := s.interviewRepo.Update(interviewID, func(iv *models.Interview) error {
		if iv.UserID != userID || iv.Status != models.StatusInProgress {
			return ErrNoActiveInterview
		}
		if !iv.HasQuestion(req.QuestionID) {
			return ErrUnknownQuestion
		}
		if iv.Answered(req.QuestionID) {
			return ErrQuestionAnswered
		}

		iv.Responses = append(iv.Responses, models.Response{
			QuestionID:  req.QuestionID,
			Answer:      req.Answer,
			SubmittedAt: s.now(),
		})

		if !iv.IsComplete() {
			return nil
		}

		feedback := s.feedback.Generate(ctx, iv)
		completedAt := s.now()
		iv.Status = models.StatusCompleted
		iv.Feedback = &feedback
		iv.CompletedAt = &completedAt
		completedNow = true
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveInterview
		}
		return nil, err
	}

	result := &models.SubmitResponseResult{
		InterviewID: interview.ID.String(),
		Completed:   completedNow,
	}
	if completedNow {
		log.Printf("✅ Interview %s completed", interview.ID)
		result.Message = "Interview completed"
		result.Feedback = interview.Feedback
		return result, nil
	}

	next := len(interview.Responses)
	result.Message = "Response submitted"
	result.NextQuestion = &next
	return result, nil
}

// resolveTarget picks the interview a response is aimed at: the explicit id
// when given, otherwise the caller's most recent in-progress interview.
func (s *interviewService) resolveTarget(userID uuid.UUID, rawID string) (uuid.UUID, error) {
	if rawID != "" {
		id, err := uuid.Parse(rawID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%w: invalid interview id", ErrNoActiveInterview)
		}
		return id, nil
	}

	active, err := s.interviewRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return uuid.Nil, ErrNoActiveInterview
		}
		return uuid.Nil, err
	}
	return active.ID, nil
}

func (s *interviewService) History(userID uuid.UUID) ([]models.Interview, error) {
	return s.interviewRepo.FindByUser(userID, s.historyLimit)
}

func (s *interviewService) Get(userID, interviewID uuid.UUID) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByIDForUser(interviewID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return interview, nil
}
