package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Archit728/Content-Moderation-SaaS/models"
	"github.com/Archit728/Content-Moderation-SaaS/services/classifier"
)

// MaxBatchItems caps one batch submission.
const MaxBatchItems = 1000

const defaultBatchWorkers = 4

// ItemResult is the outcome for one input text, at the same index the text
// was submitted. Exactly one of Verdict and Err is meaningful.
type ItemResult struct {
	Text    string
	Verdict *Verdict
	Err     string
}

// BatchResult is the in-memory view of a finished batch run.
type BatchResult struct {
	JobID          uint
	Status         models.BatchStatus
	TotalItems     int
	ProcessedItems int
	FlaggedItems   int
	Items          []ItemResult
	CreatedAt      time.Time
	CompletedAt    time.Time
}

// BatchService drives up to MaxBatchItems moderation decisions as one job.
// Thresholds are resolved once up front and held read-only for the whole
// run; items execute on a bounded worker pool and land at their input index.
type BatchService struct {
	store       ModerationStore
	classifier  classifier.Classifier
	thresholds  *ThresholdService
	workers     int
	itemTimeout time.Duration
	logger      *slog.Logger
}

func NewBatchService(store ModerationStore, cls classifier.Classifier, thresholds *ThresholdService, workers int, logger *slog.Logger) *BatchService {
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	return &BatchService{
		store:       store,
		classifier:  cls,
		thresholds:  thresholds,
		workers:     workers,
		itemTimeout: 15 * time.Second,
		logger:      logger,
	}
}

// Run validates, creates the job record, scores every text, and finalizes
// the job. One item's classifier or persistence failure is recorded in place
// and never aborts the batch; only failing to persist the job record itself
// fails the whole run. Cancelling ctx stops dispatching new items, lets
// in-flight ones finish, and still completes the job with the counters
// reflecting what actually ran.
func (s *BatchService) Run(ctx context.Context, userID uint, texts []string) (*BatchResult, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: at least one text is required", ErrValidation)
	}
	if len(texts) > MaxBatchItems {
		return nil, fmt.Errorf("%w: at most %d texts allowed", ErrValidation, MaxBatchItems)
	}
	for i, text := range texts {
		if err := ValidateText(text); err != nil {
			return nil, fmt.Errorf("%w: text %d must be 1..%d characters", ErrValidation, i, MaxTextLen)
		}
	}

	// One resolution for the whole batch; a concurrent threshold update
	// must not split the batch across two rule sets.
	thresholds, err := s.thresholds.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	job := &models.BatchJob{
		UserID:     userID,
		Status:     models.BatchStatusProcessing,
		TotalItems: len(texts),
	}
	if err := s.store.CreateBatchJob(ctx, job); err != nil {
		return nil, fmt.Errorf("%w: create batch job: %v", ErrRepository, err)
	}

	items := make([]ItemResult, len(texts))
	var (
		mu        sync.Mutex
		processed int
		flagged   int
	)

	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for i, text := range texts {
		if ctx.Err() != nil {
			// Caller-driven early stop: everything not yet
			// dispatched stays unprocessed.
			for j := i; j < len(texts); j++ {
				items[j] = ItemResult{Text: texts[j], Err: "not processed: batch cancelled"}
			}
			break
		}
		i, text := i, text
		g.Go(func() error {
			result := s.processItem(ctx, userID, job.ID, text, thresholds)
			mu.Lock()
			items[i] = result
			processed++
			if result.Verdict != nil && result.Verdict.Flagged {
				flagged++
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	now := time.Now().UTC()
	job.Status = models.BatchStatusCompleted
	job.ProcessedItems = processed
	job.FlaggedItems = flagged
	job.CompletedAt = &now

	// Finalization uses a fresh context so a cancelled batch still gets its
	// terminal state persisted.
	if err := s.store.UpdateBatchJob(context.WithoutCancel(ctx), job); err != nil {
		s.logger.Error("finalize batch job failed", "job_id", job.ID, "err", err)
		job.Status = models.BatchStatusFailed
	}

	return &BatchResult{
		JobID:          job.ID,
		Status:         job.Status,
		TotalItems:     job.TotalItems,
		ProcessedItems: processed,
		FlaggedItems:   flagged,
		Items:          items,
		CreatedAt:      job.CreatedAt,
		CompletedAt:    now,
	}, nil
}

// processItem classifies and records one text. In-flight work is allowed to
// outlive a cancelled batch context, bounded by the per-item timeout.
func (s *BatchService) processItem(ctx context.Context, userID, jobID uint, text string, thresholds ThresholdSet) ItemResult {
	itemCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.itemTimeout)
	defer cancel()

	scores, err := s.classifier.Classify(itemCtx, text)
	if err != nil {
		s.logger.Warn("batch item classification failed", "job_id", jobID, "err", err)
		s.recordItemError(itemCtx, userID, jobID, text, err)
		return ItemResult{Text: text, Err: err.Error()}
	}

	verdict := Decide(ScoreSet(scores), thresholds)

	log := &models.ModerationLog{
		UserID:        userID,
		BatchJobID:    &jobID,
		Text:          text,
		Probabilities: models.ScoreMap(verdict.Probabilities),
		Flagged:       verdict.Flagged,
		MaxLabel:      verdict.MaxLabel,
		MaxScore:      verdict.MaxScore,
	}
	if err := s.store.CreateLog(itemCtx, log); err != nil {
		s.logger.Warn("batch item persist failed", "job_id", jobID, "err", err)
		return ItemResult{Text: text, Err: "failed to persist moderation record"}
	}

	return ItemResult{Text: text, Verdict: &verdict}
}

func (s *BatchService) recordItemError(ctx context.Context, userID, jobID uint, text string, cause error) {
	log := &models.ModerationLog{
		UserID:     userID,
		BatchJobID: &jobID,
		Text:       text,
		Error:      cause.Error(),
	}
	if err := s.store.CreateLog(ctx, log); err != nil {
		s.logger.Warn("batch item error record persist failed", "job_id", jobID, "err", err)
	}
}

// Job loads the persisted state of one batch job owned by the user.
func (s *BatchService) Job(ctx context.Context, userID, jobID uint) (*models.BatchJob, error) {
	job, err := s.store.GetBatchJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	return job, nil
}
