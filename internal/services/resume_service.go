package services

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/repositories"
)

const previewLength = 200

type ResumeService interface {
	Upload(userID uuid.UUID, filename string, size int64, src io.Reader) (*models.UploadResumeResponse, error)
}

type resumeService struct {
	resumeRepo  repositories.ResumeRepository
	storage     StorageService
	parser      PDFParserService
	queue       IndexQueue
	maxFileSize int64
}

// NewResumeService wires résumé ingestion. queue may be nil when the vector
// index is disabled.
func NewResumeService(
	resumeRepo repositories.ResumeRepository,
	storage StorageService,
	parser PDFParserService,
	queue IndexQueue,
	maxFileSize int64,
) ResumeService {
	return &resumeService{
		resumeRepo:  resumeRepo,
		storage:     storage,
		parser:      parser,
		queue:       queue,
		maxFileSize: maxFileSize,
	}
}

func (s *resumeService) Upload(userID uuid.UUID, filename string, size int64, src io.Reader) (*models.UploadResumeResponse, error) {
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return nil, fmt.Errorf("%w: maximum size is %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	storedName, filePath, err := s.storage.SaveFile(filename, src)
	if err != nil {
		return nil, err
	}

	text, err := s.parser.ExtractText(filePath)
	if err != nil {
		s.discard(storedName)
		return nil, err
	}

	resume := &models.Resume{
		UserID:      userID,
		Filename:    filename,
		FilePath:    filePath,
		TextContent: text,
		UploadedAt:  time.Now(),
	}
	if err := s.resumeRepo.Create(resume); err != nil {
		s.discard(storedName)
		return nil, err
	}

	if s.queue != nil {
		s.queue.EnqueueJob(resume.ID)
	}

	return &models.UploadResumeResponse{
		Message:  "Resume uploaded successfully",
		ResumeID: resume.ID.String(),
		Preview:  Preview(text, previewLength),
	}, nil
}

func (s *resumeService) discard(storedName string) {
	if err := s.storage.DeleteFile(storedName); err != nil {
		log.Printf("⚠️  Failed to remove upload %s: %v", storedName, err)
	}
}
