package services

import (
	"context"
	"fmt"
)

// ThresholdService resolves and updates per-user category thresholds.
type ThresholdService struct {
	store ModerationStore
}

func NewThresholdService(store ModerationStore) *ThresholdService {
	return &ThresholdService{store: store}
}

// Resolve returns the effective threshold for every canonical label for the
// given user, substituting the system default wherever the user has no
// override. The result always carries all labels. Read-only.
func (s *ThresholdService) Resolve(ctx context.Context, userID uint) (ThresholdSet, error) {
	overrides, err := s.store.ThresholdsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load thresholds: %v", ErrRepository, err)
	}

	resolved := make(ThresholdSet, len(Labels))
	for _, label := range Labels {
		if v, ok := overrides[label]; ok {
			resolved[label] = v
		} else {
			resolved[label] = DefaultThresholds[label]
		}
	}
	return resolved, nil
}

// Update sets one label's threshold for a user. Unknown labels and values
// outside [0,1] are validation errors; nothing is clamped. The upsert is
// idempotent: repeating the same write leaves the resolved value unchanged.
func (s *ThresholdService) Update(ctx context.Context, userID uint, label string, value float64) error {
	if !ValidLabel(label) {
		return fmt.Errorf("%w: unknown label %q", ErrValidation, label)
	}
	if value < 0 || value > 1 {
		return fmt.Errorf("%w: threshold %g out of range [0,1]", ErrValidation, value)
	}
	if err := s.store.UpsertThreshold(ctx, userID, label, value); err != nil {
		return fmt.Errorf("%w: upsert threshold %s: %v", ErrRepository, label, err)
	}
	return nil
}

// UpdateMany applies a label→value map. Unknown labels are ignored; any
// out-of-range value rejects the whole request before a single write, so a
// partially applied update is never observable.
func (s *ThresholdService) UpdateMany(ctx context.Context, userID uint, values map[string]float64) error {
	for label, v := range values {
		if !ValidLabel(label) {
			continue
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: threshold %g for %s out of range [0,1]", ErrValidation, v, label)
		}
	}
	// Apply in canonical order so concurrent bulk updates interleave
	// deterministically per label row.
	for _, label := range Labels {
		v, ok := values[label]
		if !ok {
			continue
		}
		if err := s.Update(ctx, userID, label, v); err != nil {
			return err
		}
	}
	return nil
}
