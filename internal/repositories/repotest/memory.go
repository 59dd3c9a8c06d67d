// Package repotest provides in-memory repositories with the same contracts
// as the gorm implementations, for use in tests.
package repotest

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/repositories"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *UserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user %s: %w", user.Email, repositories.ErrDuplicate)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", repositories.ErrNotFound)
}

func (r *UserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", repositories.ErrNotFound)
	}
	return &u, nil
}

type ResumeRepository struct {
	mu      sync.Mutex
	resumes []models.Resume
}

func NewResumeRepository() *ResumeRepository {
	return &ResumeRepository{}
}

func (r *ResumeRepository) Create(resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	r.resumes = append(r.resumes, *resume)
	return nil
}

func (r *ResumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range r.resumes {
		if res.ID == id {
			return &res, nil
		}
	}
	return nil, fmt.Errorf("resume not found: %w", repositories.ErrNotFound)
}

func (r *ResumeRepository) FindLatestByUser(userID uuid.UUID) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *models.Resume
	for i := range r.resumes {
		res := r.resumes[i]
		if res.UserID != userID {
			continue
		}
		if latest == nil || !res.UploadedAt.Before(latest.UploadedAt) {
			latest = &res
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("resume not found: %w", repositories.ErrNotFound)
	}
	return latest, nil
}

func (r *ResumeRepository) FindUnindexed(limit int) ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Resume
	for _, res := range r.resumes {
		if !res.Indexed {
			out = append(out, res)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *ResumeRepository) FindAll() ([]models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.Resume(nil), r.resumes...), nil
}

func (r *ResumeRepository) MarkIndexed(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.resumes {
		if r.resumes[i].ID == id {
			r.resumes[i].Indexed = true
			return nil
		}
	}
	return fmt.Errorf("resume not found: %w", repositories.ErrNotFound)
}

// InterviewRepository serializes Update calls with a single mutex, standing
// in for the row lock taken by the gorm implementation.
type InterviewRepository struct {
	mu         sync.Mutex
	interviews map[uuid.UUID]models.Interview
	seq        int
	order      map[uuid.UUID]int
}

func NewInterviewRepository() *InterviewRepository {
	return &InterviewRepository{
		interviews: make(map[uuid.UUID]models.Interview),
		order:      make(map[uuid.UUID]int),
	}
}

func (r *InterviewRepository) Create(interview *models.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now()
	}
	r.seq++
	r.order[interview.ID] = r.seq
	r.interviews[interview.ID] = clone(*interview)
	return nil
}

func (r *InterviewRepository) FindByIDForUser(id, userID uuid.UUID) (*models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iv, ok := r.interviews[id]
	if !ok || iv.UserID != userID {
		return nil, fmt.Errorf("interview not found: %w", repositories.ErrNotFound)
	}
	out := clone(iv)
	return &out, nil
}

func (r *InterviewRepository) FindActiveByUser(userID uuid.UUID) (*models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, iv := range r.sortedLocked(userID) {
		if iv.Status == models.StatusInProgress {
			out := clone(iv)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("active interview not found: %w", repositories.ErrNotFound)
}

func (r *InterviewRepository) FindByUser(userID uuid.UUID, limit int) ([]models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := r.sortedLocked(userID)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]models.Interview, 0, len(sorted))
	for _, iv := range sorted {
		out = append(out, clone(iv))
	}
	return out, nil
}

func (r *InterviewRepository) Update(id uuid.UUID, mutate func(interview *models.Interview) error) (*models.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iv, ok := r.interviews[id]
	if !ok {
		return nil, fmt.Errorf("interview not found: %w", repositories.ErrNotFound)
	}

	working := clone(iv)
	if err := mutate(&working); err != nil {
		return nil, err
	}
	r.interviews[id] = clone(working)
	return &working, nil
}

// sortedLocked returns the user's interviews newest first. Creation order
// breaks ties between equal timestamps.
func (r *InterviewRepository) sortedLocked(userID uuid.UUID) []models.Interview {
	var list []models.Interview
	for _, iv := range r.interviews {
		if iv.UserID == userID {
			list = append(list, iv)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return r.order[list[i].ID] > r.order[list[j].ID]
	})
	return list
}

func clone(iv models.Interview) models.Interview {
	out := iv
	out.Questions = append(out.Questions[:0:0], iv.Questions...)
	out.Responses = append(out.Responses[:0:0], iv.Responses...)
	if iv.Feedback != nil {
		f := *iv.Feedback
		out.Feedback = &f
	}
	if iv.CompletedAt != nil {
		t := *iv.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
