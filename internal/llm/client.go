// Package llm generates unit tests for a source file through the Gemini
// API and sanitizes the response into a compilable source file.
package llm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the generation endpoint with an explicit per-call timeout.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a generation client. The API key is required; the model
// falls back to a default when empty.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("generation API key is required (set --api-key or GEMINI_API_KEY)")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create generation client")
	}
	return &Client{client: client, model: model, timeout: timeout}, nil
}

// GenerateTests sends the test-generation prompt for one source variant and
// returns the raw response text. The caller sanitizes it.
func (c *Client) GenerateTests(ctx context.Context, source, className string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(source, className)
	log.Debugf("sending generation request to model %s (%d prompt bytes)", c.model, len(prompt))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.Wrapf(err, "generation request to model %s failed", c.model)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("generation endpoint returned an empty response")
	}
	return text, nil
}
