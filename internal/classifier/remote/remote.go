// Package remote classifies sentences through an HTTP model server, for
// deployments that keep the model out of process.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Client posts text batches to a classification endpoint implementing
// POST {base_url}/classify with body {"texts": [...]} and response
// {"labels": [...]}.
type Client struct {
	baseURL    string
	apiKey     string
	batchSize  int
	client     *http.Client
	maxRetries int
}

// Config configures the remote classifier client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Timeout   time.Duration
	BatchSize int
}

// NewClient creates a classification client. The API key env var is optional;
// when named but unset the constructor fails rather than sending
// unauthenticated requests to an endpoint that expects a key.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing classifier base URL")
	}
	var key string
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
		}
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	b := cfg.BatchSize
	if b <= 0 {
		b = 16
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		batchSize:  b,
		client:     &http.Client{Timeout: t},
		maxRetries: 5,
	}, nil
}

// Classify labels every text, batching requests and preserving order.
func (c *Client) Classify(ctx context.Context, texts []string) ([]int, error) {
	labels := make([]int, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.classifyBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		labels = append(labels, batch...)
	}
	return labels, nil
}

func (c *Client) classifyBatch(ctx context.Context, texts []string) ([]int, error) {
	type reqBody struct {
		Texts []string `json:"texts"`
	}
	url := fmt.Sprintf("%s/classify", c.baseURL)

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, _ := json.Marshal(reqBody{Texts: texts})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			// Respect Retry-After if provided
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					_ = resp.Body.Close()
					time.Sleep(time.Duration(secs) * time.Second)
				} else {
					_ = resp.Body.Close()
					time.Sleep(retryDelay(attempt))
				}
			} else {
				_ = resp.Body.Close()
				time.Sleep(retryDelay(attempt))
			}
			if attempt < c.maxRetries {
				continue
			}
			return nil, fmt.Errorf("classification failed: %s", resp.Status)
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("classification failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}

		var out struct {
			Labels []int `json:"labels"`
		}
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, fmt.Errorf("decode classification response: %w", err)
		}
		if len(out.Labels) != len(texts) {
			return nil, fmt.Errorf("classifier returned %d labels for %d texts", len(out.Labels), len(texts))
		}
		return out.Labels, nil
	}
	return nil, fmt.Errorf("no labels returned")
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
