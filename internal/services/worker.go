package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ai-interview/internal/repositories"
)

const (
	pollInterval  = 10 * time.Second
	pollBatchSize = 10
	queueCapacity = 100
)

// IndexQueue accepts résumés for background indexing.
type IndexQueue interface {
	EnqueueJob(resumeID uuid.UUID)
}

type Worker interface {
	IndexQueue
	Start(ctx context.Context)
	Stop()
}

type worker struct {
	resumeRepo  repositories.ResumeRepository
	index       ResumeIndex
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewWorker(
	resumeRepo repositories.ResumeRepository,
	index ResumeIndex,
	concurrency int,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		resumeRepo:  resumeRepo,
		index:       index,
		jobQueue:    make(chan uuid.UUID, queueCapacity),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		inFlight:    make(map[uuid.UUID]struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnindexed(ctx)

	log.Println("✅ Index worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping index worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Index worker stopped")
	})
}

// EnqueueJob implements IndexQueue. It never blocks the caller: a full queue
// drops the job and the poller picks the résumé up later.
func (w *worker) EnqueueJob(resumeID uuid.UUID) {
	if !w.claim(resumeID) {
		return
	}

	select {
	case <-w.stopChan:
		w.release(resumeID)
		log.Printf("⚠️  Index worker stopped, cannot enqueue resume %s\n", resumeID)
	case w.jobQueue <- resumeID:
		log.Printf("📥 Resume %s enqueued for indexing\n", resumeID)
	default:
		w.release(resumeID)
		log.Printf("⚠️  Index queue full, resume %s left for the poller\n", resumeID)
	}
}

func (w *worker) claim(resumeID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[resumeID]; busy {
		return false
	}
	w.inFlight[resumeID] = struct{}{}
	return true
}

func (w *worker) release(resumeID uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, resumeID)
	w.mu.Unlock()
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Index worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case resumeID := <-w.jobQueue:
			if err := w.index.IndexResume(ctx, resumeID); err != nil {
				log.Printf("❌ Index worker #%d failed on resume %s: %v\n", workerID, resumeID, err)
			}
			w.release(resumeID)
		}
	}
}

func (w *worker) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.resumeRepo.FindUnindexed(pollBatchSize)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unindexed resumes: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d unindexed resumes\n", len(pending))
			}

			for _, resume := range pending {
				w.EnqueueJob(resume.ID)
			}
		}
	}
}
