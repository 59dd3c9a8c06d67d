package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/repositories/repotest"
)

type interviewFixture struct {
	svc          InterviewService
	resumes      *repotest.ResumeRepository
	questionsGen *scriptedGenerator
	feedbackGen  *scriptedGenerator
	userID       uuid.UUID
}

func newInterviewFixture(t *testing.T, index ResumeIndex) *interviewFixture {
	t.Helper()

	f := &interviewFixture{
		resumes:      repotest.NewResumeRepository(),
		questionsGen: &scriptedGenerator{reply: "What is Go?\nWhat is a goroutine?\nTell me about a team conflict."},
		feedbackGen:  &scriptedGenerator{reply: "Strong answers overall."},
		userID:       uuid.New(),
	}
	f.svc = NewInterviewService(
		repotest.NewInterviewRepository(),
		f.resumes,
		NewQuestionGenerator(f.questionsGen, 3000, 7),
		NewFeedbackGenerator(f.feedbackGen, PairByQuestionID),
		index,
		50,
	)
	return f
}

func (f *interviewFixture) uploadResume(t *testing.T, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, f.resumes.Create(&models.Resume{
		UserID:      userID,
		Filename:    "cv.pdf",
		TextContent: "Five years of Go.",
		UploadedAt:  time.Now(),
	}))
}

func (f *interviewFixture) start(t *testing.T, userID uuid.UUID) *models.StartInterviewResponse {
	t.Helper()
	resp, err := f.svc.Start(context.Background(), userID, &models.StartInterviewRequest{
		JobRole: "Software Engineer", ExperienceLevel: "mid",
	})
	require.NoError(t, err)
	return resp
}

func (f *interviewFixture) submit(userID uuid.UUID, interviewID, questionID string) (*models.SubmitResponseResult, error) {
	return f.svc.SubmitResponse(context.Background(), userID, &models.SubmitResponseRequest{
		InterviewID: interviewID,
		QuestionID:  questionID,
		Answer:      "answer to " + questionID,
	})
}

func TestStartRequiresResume(t *testing.T) {
	f := newInterviewFixture(t, nil)

	_, err := f.svc.Start(context.Background(), f.userID, &models.StartInterviewRequest{JobRole: "SRE", ExperienceLevel: "senior"})

	assert.ErrorIs(t, err, ErrMissingResume)
	assert.Equal(t, 0, f.questionsGen.calls())
}

func TestStartPersistsInProgressInterview(t *testing.T) {
	f := newInterviewFixture(t, nil)
	f.uploadResume(t, f.userID)

	resp := f.start(t, f.userID)

	assert.Equal(t, 3, resp.TotalQuestions)
	require.Len(t, resp.Questions, 3)

	id := uuid.MustParse(resp.InterviewID)
	interview, err := f.svc.Get(f.userID, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, interview.Status)
	assert.Equal(t, "text", interview.InterviewType)
	assert.Empty(t, interview.Responses)
	assert.Nil(t, interview.Feedback)
	assert.Contains(t, f.questionsGen.lastRequest().Prompt, "Five years of Go.")
}

func TestStartUsesLatestResumeAndHighlights(t *testing.T) {
	f := newInterviewFixture(t, &stubIndex{highlights: "- Built a billing system"})
	require.NoError(t, f.resumes.Create(&models.Resume{UserID: f.userID, TextContent: "old resume", UploadedAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, f.resumes.Create(&models.Resume{UserID: f.userID, TextContent: "new resume", UploadedAt: time.Now()}))

	f.start(t, f.userID)

	prompt := f.questionsGen.lastRequest().Prompt
	assert.Contains(t, prompt, "new resume")
	assert.NotContains(t, prompt, "old resume")
	assert.Contains(t, prompt, "Built a billing system")
}

func TestStartIgnoresHighlightFailures(t *testing.T) {
	f := newInterviewFixture(t, &stubIndex{err: errBackendDown})
	f.uploadResume(t, f.userID)

	resp := f.start(t, f.userID)

	assert.Equal(t, 3, resp.TotalQuestions)
}

func TestSubmitCompletesExactlyOnce(t *testing.T) {
	f := newInterviewFixture(t, nil)
	f.uploadResume(t, f.userID)
	started := f.start(t, f.userID)

	for i, q := range started.Questions[:2] {
		result, err := f.submit(f.userID, "", q.ID)
		require.NoError(t, err)
		assert.False(t, result.Completed)
		assert.Nil(t, result.Feedback)
		require.NotNil(t, result.NextQuestion)
		assert.Equal(t, i+1, *result.NextQuestion)
	}

	result, err := f.submit(f.userID, "", started.Questions[2].ID)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	require.NotNil(t, result.Feedback)
	assert.Equal(t, "Strong answers overall.", *result.Feedback)
	assert.Nil(t, result.NextQuestion)
	assert.Equal(t, 1, f.feedbackGen.calls())

	_, err = f.submit(f.userID, "", started.Questions[2].ID)
	assert.ErrorIs(t, err, ErrNoActiveInterview)
	_, err = f.submit(f.userID, started.InterviewID, started.Questions[2].ID)
	assert.ErrorIs(t, err, ErrNoActiveInterview)

	id := uuid.MustParse(started.InterviewID)
	first, err := f.svc.Get(f.userID, id)
	require.NoError(t, err)
	second, err := f.svc.Get(f.userID, id)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, first.Status)
	assert.Len(t, first.Responses, 3)
	require.NotNil(t, first.CompletedAt)
	assert.Equal(t, *first.Feedback, *second.Feedback)
	assert.Equal(t, 1, f.feedbackGen.calls())
}

func TestConcurrentSubmissionsCompleteOnce(t *testing.T) {
	f := newInterviewFixture(t, nil)
	f.uploadResume(t, f.userID)
	started := f.start(t, f.userID)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	for _, q := range started.Questions {
		wg.Add(1)
		go func(questionID string) {
			defer wg.Done()
			result, err := f.submit(f.userID, started.InterviewID, questionID)
			if assert.NoError(t, err) && result.Completed {
				mu.Lock()
				completed++
				mu.Unlock()
			}
		}(q.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, f.feedbackGen.calls())
}

func TestSubmitValidatesQuestionIdentity(t *testing.T) {
	f := newInterviewFixture(t, nil)
	f.uploadResume(t, f.userID)
	started := f.start(t, f.userID)

	_, err := f.submit(f.userID, "", "not-a-question")
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	_, err = f.submit(f.userID, "", started.Questions[0].ID)
	require.NoError(t, err)
	_, err = f.submit(f.userID, "", started.Questions[0].ID)
	assert.ErrorIs(t, err, ErrQuestionAnswered)

	interview, err := f.svc.Get(f.userID, uuid.MustParse(started.InterviewID))
	require.NoError(t, err)
	assert.Len(t, interview.Responses, 1)
}

func TestSubmitTargetsExplicitInterview(t *testing.T) {
	f := newInterviewFixture(t, nil)
	f.uploadResume(t, f.userID)
	older := f.start(t, f.userID)
	newer := f.start(t, f.userID)

	_, err := f.submit(f.userID, older.InterviewID, older.Questions[0].ID)
	require.NoError(t, err)

	// Without an id the newest in-progress interview is the target.
	_, err = f.submit(f.userID, "", older.Questions[1].ID)
	assert.ErrorIs(t, err, ErrUnknownQuestion)
	_, err = f.submit(f.userID, "", newer.Questions[0].ID)
	require.NoError(t, err)

	olderInterview, err := f.svc.Get(f.userID, uuid.MustParse(older.InterviewID))
	require.NoError(t, err)
	assert.Len(t, olderInterview.Responses, 1)
}

func TestSubmitRejectsOtherUsersInterview(t *testing.T) {
	f := newInterviewFixture(t, nil)
	f.uploadResume(t, f.userID)
	started := f.start(t, f.userID)

	stranger := uuid.New()
	_, err := f.submit(stranger, started.InterviewID, started.Questions[0].ID)
	assert.ErrorIs(t, err, ErrNoActiveInterview)

	_, err = f.submit(stranger, "", started.Questions[0].ID)
	assert.ErrorIs(t, err, ErrNoActiveInterview)

	_, err = f.submit(f.userID, uuid.NewString(), started.Questions[0].ID)
	assert.ErrorIs(t, err, ErrNoActiveInterview)

	_, err = f.svc.Get(stranger, uuid.MustParse(started.InterviewID))
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestHistoryNewestFirst(t *testing.T) {
	f := newInterviewFixture(t, nil)
	f.uploadResume(t, f.userID)
	first := f.start(t, f.userID)
	second := f.start(t, f.userID)

	history, err := f.svc.History(f.userID)
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, second.InterviewID, history[0].ID.String())
	assert.Equal(t, first.InterviewID, history[1].ID.String())

	empty, err := f.svc.History(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
