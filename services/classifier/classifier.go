// Package classifier abstracts the external toxicity scoring model. Every
// backend returns a raw label→score map for one text; turning scores into a
// flagging decision is the caller's business.
package classifier

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable means the classifier could not be reached in time
	// (transport failure, timeout, or a 5xx from the service). Retryable.
	ErrUnavailable = errors.New("classifier unavailable")

	// ErrProtocol means the classifier answered with something that is not
	// a score mapping. Retrying will not fix a malformed response.
	ErrProtocol = errors.New("classifier protocol error")
)

// Classifier scores one text against the category labels. Implementations
// own their connection lifecycle: constructed explicitly, reused across
// calls, released with Close.
type Classifier interface {
	Classify(ctx context.Context, text string) (map[string]float64, error)
	Close() error
}
