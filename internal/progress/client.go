// Package progress syncs lesson attempts with a remote progress API.
package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
	baseDelay      = 250 * time.Millisecond
	maxDelay       = 2 * time.Second
)

// Attempt is a completed lesson attempt reported to the server.
type Attempt struct {
	LessonID        int `json:"lessonId"`
	WPM             int `json:"wpm"`
	Accuracy        int `json:"accuracy"`
	DurationSeconds int `json:"durationSeconds"`
}

// Aggregate is the server-side progress summary for an identity.
type Aggregate struct {
	TotalLessonsCompleted int `json:"totalLessonsCompleted"`
	TotalTypingSeconds    int `json:"totalTypingSeconds"`
	AverageWPM            int `json:"averageWPM"`
	AverageAccuracy       int `json:"averageAccuracy"`
	Level                 int `json:"level"`
	XP                    int `json:"xp"`
}

// Client talks to the remote progress API for signed-in profiles.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a progress client for the given API base URL.
func NewClient(baseURL, token string) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("progress api url is empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid progress api url: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

// SubmitAttempt reports a completed lesson attempt and returns the updated
// aggregate for the identity. Retries transient server failures with backoff.
func (c *Client) SubmitAttempt(ctx context.Context, identity string, attempt Attempt) (Aggregate, error) {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return Aggregate{}, fmt.Errorf("encode attempt: %w", err)
	}
	endpoint := fmt.Sprintf("%s/users/%s/attempts", c.baseURL, url.PathEscape(identity))

	var lastErr error
	for attemptNo := 0; attemptNo <= maxRetries; attemptNo++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return Aggregate{}, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return Aggregate{}, fmt.Errorf("submit attempt: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			var agg Aggregate
			decodeErr := json.NewDecoder(resp.Body).Decode(&agg)
			if cerr := resp.Body.Close(); cerr != nil {
				// Best-effort body close.
				_ = cerr
			}
			if decodeErr != nil {
				return Aggregate{}, fmt.Errorf("decode aggregate: %w", decodeErr)
			}
			return agg, nil
		}

		body, _ := io.ReadAll(resp.Body)
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
		lastErr = fmt.Errorf("progress api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if !retryable(resp.StatusCode) || attemptNo == maxRetries {
			return Aggregate{}, lastErr
		}
		if err := sleepWithBackoff(ctx, attemptNo); err != nil {
			return Aggregate{}, err
		}
	}
	return Aggregate{}, lastErr
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sleepWithBackoff(ctx context.Context, attempt int) error {
	delay := baseDelay * time.Duration(1<<attempt)
	if delay > maxDelay {
		delay = maxDelay
	}
	jitter := time.Duration(rand.Int63n(int64(delay/2) + 1))
	delay += jitter
	if delay > maxDelay {
		delay = maxDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
