package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Archit728/Content-Moderation-SaaS/models"
	"github.com/Archit728/Content-Moderation-SaaS/services/classifier"
)

// ModerationService scores and decides a single text. Classifier failures
// surface directly to the caller; there is no fallback score.
type ModerationService struct {
	store      ModerationStore
	classifier classifier.Classifier
	thresholds *ThresholdService
	logger     *slog.Logger
}

func NewModerationService(store ModerationStore, cls classifier.Classifier, thresholds *ThresholdService, logger *slog.Logger) *ModerationService {
	return &ModerationService{
		store:      store,
		classifier: cls,
		thresholds: thresholds,
		logger:     logger,
	}
}

// ModerationOutcome pairs the verdict with its persisted log record.
type ModerationOutcome struct {
	LogID     uint
	Verdict   Verdict
	CreatedAt time.Time
}

func (s *ModerationService) Moderate(ctx context.Context, userID uint, text string) (*ModerationOutcome, error) {
	if err := ValidateText(text); err != nil {
		return nil, fmt.Errorf("%w: text must be 1..%d characters", ErrValidation, MaxTextLen)
	}

	thresholds, err := s.thresholds.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	scores, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.logger.Warn("classification failed", "user_id", userID, "err", err)
		return nil, err
	}

	verdict := Decide(ScoreSet(scores), thresholds)

	log := &models.ModerationLog{
		UserID:        userID,
		Text:          text,
		Probabilities: models.ScoreMap(verdict.Probabilities),
		Flagged:       verdict.Flagged,
		MaxLabel:      verdict.MaxLabel,
		MaxScore:      verdict.MaxScore,
	}
	if err := s.store.CreateLog(ctx, log); err != nil {
		return nil, fmt.Errorf("%w: save moderation log: %v", ErrRepository, err)
	}

	return &ModerationOutcome{
		LogID:     log.ID,
		Verdict:   verdict,
		CreatedAt: log.CreatedAt,
	}, nil
}

// History returns the caller's most recent moderation records, newest first.
func (s *ModerationService) History(ctx context.Context, userID uint, limit int) ([]models.ModerationLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	logs, err := s.store.RecentLogs(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: load history: %v", ErrRepository, err)
	}
	return logs, nil
}
