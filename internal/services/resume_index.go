package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/ai-interview/internal/models"
	"alfredoptarigan/ai-interview/internal/repositories"
)

const (
	chunkSize      = 800
	chunkOverlap   = 150
	highlightLimit = 3
)

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ResumeIndex keeps résumé chunks in the vector store and retrieves the
// passages most relevant to a target role.
type ResumeIndex interface {
	IndexResume(ctx context.Context, resumeID uuid.UUID) error
	Highlights(ctx context.Context, resume *models.Resume, jobRole, experienceLevel string) (string, error)
}

type resumeIndex struct {
	resumeRepo    repositories.ResumeRepository
	embedder      Embedder
	store         QdrantService
	chunker       TextChunker
	promptBuilder *PromptBuilder
}

func NewResumeIndex(
	resumeRepo repositories.ResumeRepository,
	embedder Embedder,
	store QdrantService,
) ResumeIndex {
	return &resumeIndex{
		resumeRepo:    resumeRepo,
		embedder:      embedder,
		store:         store,
		chunker:       NewTextChunker(),
		promptBuilder: NewPromptBuilder(),
	}
}

func (r *resumeIndex) IndexResume(ctx context.Context, resumeID uuid.UUID) error {
	resume, err := r.resumeRepo.FindByID(resumeID)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	if err := r.store.DeleteResume(ctx, resume.ID); err != nil {
		return err
	}

	chunks := r.chunker.ChunkText(resume.TextContent, chunkSize, chunkOverlap)
	for i, text := range chunks {
		embedding, err := r.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		chunk := ResumeChunk{
			ResumeID: resume.ID,
			UserID:   resume.UserID,
			Index:    i,
			Text:     text,
		}
		if err := r.store.UpsertChunk(ctx, chunk, embedding); err != nil {
			return fmt.Errorf("failed to store chunk %d: %w", i, err)
		}
	}

	if err := r.resumeRepo.MarkIndexed(resume.ID); err != nil {
		return err
	}

	log.Printf("✅ Indexed resume %s (%d chunks)", resume.ID, len(chunks))
	return nil
}

func (r *resumeIndex) Highlights(ctx context.Context, resume *models.Resume, jobRole, experienceLevel string) (string, error) {
	if !resume.Indexed {
		return "", nil
	}

	query := r.promptBuilder.BuildRetrievalQuery(jobRole, experienceLevel)
	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to embed retrieval query: %w", err)
	}

	results, err := r.store.SearchSimilar(ctx, embedding, resume.ID, highlightLimit)
	if err != nil {
		return "", err
	}

	return FormatHighlights(results), nil
}

// FormatHighlights joins retrieved passages in retrieval order.
func FormatHighlights(results []SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, result := range results {
		if text := strings.TrimSpace(result.Text); text != "" {
			parts = append(parts, "- "+text)
		}
	}
	return strings.Join(parts, "\n")
}
