package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ai-interview/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindLatestByUser(userID uuid.UUID) (*models.Resume, error)
	FindUnindexed(limit int) ([]models.Resume, error)
	FindAll() ([]models.Resume, error)
	MarkIndexed(id uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindLatestByUser implements ResumeRepository.
func (r *resumeRepository) FindLatestByUser(userID uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find latest resume: %w", err)
	}
	return &resume, nil
}

// FindUnindexed implements ResumeRepository.
func (r *resumeRepository) FindUnindexed(limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("indexed = ?", false).
		Order("uploaded_at ASC").
		Limit(limit).
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed resumes: %w", err)
	}
	return resumes, nil
}

// FindAll implements ResumeRepository.
func (r *resumeRepository) FindAll() ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Order("uploaded_at ASC").Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// MarkIndexed implements ResumeRepository.
func (r *resumeRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Update("indexed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark resume indexed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found: %w", ErrNotFound)
	}
	return nil
}
