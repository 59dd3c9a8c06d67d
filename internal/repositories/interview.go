package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/ai-interview/internal/models"
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	FindByIDForUser(id, userID uuid.UUID) (*models.Interview, error)
	FindActiveByUser(userID uuid.UUID) (*models.Interview, error)
	FindByUser(userID uuid.UUID, limit int) ([]models.Interview, error)
	// Update loads the interview under a row lock, applies mutate and
	// persists the result in the same transaction. Nothing is written when
	// mutate returns an error.
	Update(id uuid.UUID, mutate func(interview *models.Interview) error) (*models.Interview, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByIDForUser(id, userID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) FindActiveByUser(userID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.StatusInProgress).
		Order("created_at DESC").
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active interview not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find active interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) FindByUser(userID uuid.UUID, limit int) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (r *interviewRepository) Update(id uuid.UUID, mutate func(interview *models.Interview) error) (*models.Interview, error) {
	var interview models.Interview

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&interview).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("interview not found: %w", ErrNotFound)
			}
			return fmt.Errorf("failed to lock interview: %w", err)
		}

		if err := mutate(&interview); err != nil {
			return err
		}

		if err := tx.Save(&interview).Error; err != nil {
			return fmt.Errorf("failed to update interview: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &interview, nil
}
