package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/mock-interview/internal/repositories"
)

const (
	jobQueueSize    = 100
	pendingJobBatch = 10
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(reportID uuid.UUID)
}

type worker struct {
	reportRepo   repositories.ReportRepository
	interviewer  InterviewerService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopOnce     sync.Once
	stopChan     chan struct{}

	// Reports currently queued or running, so the poller does not enqueue
	// the same report twice.
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewWorker(
	reportRepo repositories.ReportRepository,
	interviewer InterviewerService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &worker{
		reportRepo:   reportRepo,
		interviewer:  interviewer,
		jobQueue:     make(chan uuid.UUID, jobQueueSize),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		inFlight:     make(map[uuid.UUID]struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting report worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Report worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping report worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Report worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(reportID uuid.UUID) {
	if !w.claim(reportID) {
		return
	}

	select {
	case w.jobQueue <- reportID:
		log.Printf("📥 Report job %s enqueued\n", reportID)
	case <-w.stopChan:
		w.release(reportID)
		log.Printf("⚠️  Worker stopped, cannot enqueue report job %s\n", reportID)
	}
}

func (w *worker) claim(reportID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inFlight[reportID]; ok {
		return false
	}
	w.inFlight[reportID] = struct{}{}
	return true
}

func (w *worker) release(reportID uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, reportID)
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case reportID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing report %s\n", workerID, reportID)
			if err := w.interviewer.GenerateReport(ctx, reportID); err != nil {
				log.Printf("❌ Worker #%d failed to process report %s: %v\n", workerID, reportID, err)
			} else {
				log.Printf("✅ Worker #%d completed report %s\n", workerID, reportID)
			}
			w.release(reportID)
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending reports poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.reportRepo.FindPendingJobs(pendingJobBatch)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending reports: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending reports\n", len(pending))
			}

			for _, report := range pending {
				w.EnqueueJob(report.ID)
			}
		}
	}
}
