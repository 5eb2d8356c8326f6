package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
)

const defaultTimeout = 10 * time.Second

// HTTPClassifier talks to a network-addressable scoring service that accepts
// {"text": ...} and answers with a flat label→score JSON object. The
// underlying http.Client is created lazily on first use and shared across
// calls so connections get reused instead of re-established per request.
type HTTPClassifier struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	labels   []string

	once   sync.Once
	client *http.Client
}

// NewHTTPClassifier constructs a client for the given scoring endpoint.
// apiKey may be empty for unauthenticated deployments. A non-positive
// timeout falls back to the default per-call bound. labels are the expected
// categories: any the service omits come back as score 0.
func NewHTTPClassifier(endpoint, apiKey string, timeout time.Duration, labels []string) *HTTPClassifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		timeout:  timeout,
		labels:   labels,
	}
}

func (c *HTTPClassifier) httpClient() *http.Client {
	c.once.Do(func() {
		c.client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        16,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	})
	return c.client
}

// Classify scores one text. Transport failures and 5xx responses are retried
// exactly once; a malformed response body fails immediately.
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (map[string]float64, error) {
	var scores map[string]float64

	backoff := retry.NewConstant(200 * time.Millisecond)
	err := retry.Do(ctx, retry.WithMaxRetries(1, backoff), func(ctx context.Context) error {
		result, err := c.classifyOnce(ctx, text)
		if err != nil {
			if isUnavailable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		scores = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func (c *HTTPClassifier) classifyOnce(ctx context.Context, text string) (map[string]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrProtocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrProtocol, resp.StatusCode, string(body))
	}

	var scores map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("%w: decode scores: %v", ErrProtocol, err)
	}
	if scores == nil {
		return nil, fmt.Errorf("%w: empty score mapping", ErrProtocol)
	}

	// A partially scored response is usable; labels the service skipped
	// score 0 instead of failing the whole call.
	out := make(map[string]float64, len(c.labels))
	for _, label := range c.labels {
		out[label] = scores[label]
	}
	return out, nil
}

// Close releases idle connections held by the shared client.
func (c *HTTPClassifier) Close() error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	return nil
}

func isUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
