package services

import (
	"context"
	"errors"
	"sync"

	"github.com/Archit728/Content-Moderation-SaaS/models"
)

// fakeStore is an in-memory ModerationStore with switchable failure points.
type fakeStore struct {
	mu sync.Mutex

	thresholds map[uint]map[string]float64
	logs       []models.ModerationLog
	jobs       map[uint]models.BatchJob

	nextLogID uint
	nextJobID uint

	upsertCalls int

	failThresholds bool
	failUpsert     bool
	failCreateJob  bool
	failUpdateJob  bool
	failLogForText map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		thresholds:     make(map[uint]map[string]float64),
		jobs:           make(map[uint]models.BatchJob),
		failLogForText: make(map[string]bool),
	}
}

func (f *fakeStore) ThresholdsForUser(_ context.Context, userID uint) (map[string]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failThresholds {
		return nil, errors.New("boom")
	}
	out := make(map[string]float64)
	for label, v := range f.thresholds[userID] {
		out[label] = v
	}
	return out, nil
}

func (f *fakeStore) UpsertThreshold(_ context.Context, userID uint, label string, value float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.failUpsert {
		return errors.New("boom")
	}
	if f.thresholds[userID] == nil {
		f.thresholds[userID] = make(map[string]float64)
	}
	f.thresholds[userID][label] = value
	return nil
}

func (f *fakeStore) CreateLog(_ context.Context, log *models.ModerationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLogForText[log.Text] {
		return errors.New("boom")
	}
	f.nextLogID++
	log.ID = f.nextLogID
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeStore) RecentLogs(_ context.Context, userID uint, limit int) ([]models.ModerationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ModerationLog
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.logs[i].UserID == userID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeStore) CreateBatchJob(_ context.Context, job *models.BatchJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateJob {
		return errors.New("boom")
	}
	f.nextJobID++
	job.ID = f.nextJobID
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeStore) UpdateBatchJob(_ context.Context, job *models.BatchJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdateJob {
		return errors.New("boom")
	}
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeStore) GetBatchJob(_ context.Context, userID, jobID uint) (*models.BatchJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok || job.UserID != userID {
		return nil, ErrNotFound
	}
	out := job
	return &out, nil
}

func (f *fakeStore) logCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.logs)
}

func (f *fakeStore) jobByID(id uint) (models.BatchJob, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	return job, ok
}
