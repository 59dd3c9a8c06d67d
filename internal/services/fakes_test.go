package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/ai-interview/internal/models"
)

// scriptedGenerator returns a fixed reply and records every request.
type scriptedGenerator struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []GenerationRequest
}

func (g *scriptedGenerator) Generate(_ context.Context, req GenerationRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", &GenerationError{Op: "generate", Err: g.err}
	}
	return g.reply, nil
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

func (g *scriptedGenerator) lastRequest() GenerationRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

// jsonGenerator is a scriptedGenerator that also supports structured output.
type jsonGenerator struct {
	scriptedGenerator
	jsonReply string
	jsonCalls int
}

func (g *jsonGenerator) GenerateJSON(_ context.Context, req GenerationRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.jsonCalls++
	g.requests = append(g.requests, req)
	return g.jsonReply, nil
}

type fakeParser struct {
	text string
	err  error
}

func (p *fakeParser) ExtractText(string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

type recordingQueue struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (q *recordingQueue) EnqueueJob(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, id)
}

type fakeEmbedder struct {
	err   error
	texts []string
}

func (e *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.texts = append(e.texts, text)
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeVectorStore struct {
	deleted []uuid.UUID
	chunks  []ResumeChunk
	results []SearchResult
	events  []string
}

func (s *fakeVectorStore) InitCollection(context.Context) error { return nil }

func (s *fakeVectorStore) UpsertChunk(_ context.Context, chunk ResumeChunk, _ []float32) error {
	s.events = append(s.events, "upsert")
	s.chunks = append(s.chunks, chunk)
	return nil
}

func (s *fakeVectorStore) SearchSimilar(_ context.Context, _ []float32, resumeID uuid.UUID, limit int) ([]SearchResult, error) {
	var out []SearchResult
	for _, r := range s.results {
		if r.ResumeID == resumeID.String() && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeVectorStore) DeleteResume(_ context.Context, resumeID uuid.UUID) error {
	s.events = append(s.events, "delete")
	s.deleted = append(s.deleted, resumeID)
	return nil
}

// stubIndex serves fixed highlights to the interview service.
type stubIndex struct {
	highlights string
	err        error
}

func (s *stubIndex) IndexResume(context.Context, uuid.UUID) error { return nil }

func (s *stubIndex) Highlights(context.Context, *models.Resume, string, string) (string, error) {
	return s.highlights, s.err
}

var errBackendDown = errors.New("backend down")
