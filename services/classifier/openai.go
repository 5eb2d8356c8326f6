package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClassifier scores text through the OpenAI moderation endpoint and
// projects its categories onto the canonical toxicity labels.
type OpenAIClassifier struct {
	client *openai.Client
}

func NewOpenAIClassifier(apiKey string) *OpenAIClassifier {
	return &OpenAIClassifier{client: openai.NewClient(apiKey)}
}

// NewOpenAIClassifierWithConfig is used by tests to point the client at a
// stub server.
func NewOpenAIClassifierWithConfig(cfg openai.ClientConfig) *OpenAIClassifier {
	return &OpenAIClassifier{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (map[string]float64, error) {
	resp, err := c.client.Moderations(ctx, openai.ModerationRequest{
		Input: text,
		Model: openai.ModerationTextStable,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode < 500 && apiErr.HTTPStatusCode != 429 {
			return nil, fmt.Errorf("%w: moderation call: %v", ErrProtocol, err)
		}
		return nil, fmt.Errorf("%w: moderation call: %v", ErrUnavailable, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: moderation response carried no results", ErrProtocol)
	}

	cs := resp.Results[0].CategoryScores
	overall := math.Max(float64(cs.Harassment), math.Max(float64(cs.Hate),
		math.Max(float64(cs.Violence), float64(cs.Sexual))))

	return map[string]float64{
		"toxic":         overall,
		"severe_toxic":  math.Max(float64(cs.HarassmentThreatening), float64(cs.ViolenceGraphic)),
		"obscene":       float64(cs.Sexual),
		"threat":        math.Max(float64(cs.Violence), float64(cs.HateThreatening)),
		"insult":        float64(cs.Harassment),
		"identity_hate": float64(cs.Hate),
	}, nil
}

func (c *OpenAIClassifier) Close() error { return nil }
