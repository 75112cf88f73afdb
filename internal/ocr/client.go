package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"medreport/internal/config"
)

// Result is what the external OCR collaborator hands back: the recognized
// text and a scalar confidence. The service is a black box; any internal
// preprocessing passes are its own business.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.OCRTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.OCRRateLimitRPS),
	}
}

// Recognize submits one image to the OCR service and returns its text plus
// confidence. Retries on 429/5xx with jittered backoff, up to 5 attempts.
func (c *Client) Recognize(ctx context.Context, image []byte) (Result, error) {
	if strings.TrimSpace(c.cfg.OCRBaseURL) == "" {
		return Result{}, errors.New("missing OCR_BASE_URL")
	}
	endpoint := strings.TrimRight(c.cfg.OCRBaseURL, "/") + "/v1/recognize"

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(image))
		if err != nil {
			return Result{}, err
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		req.Header.Set("Accept", "application/json")
		if c.cfg.OCRToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.OCRToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("ocr status %d", resp.StatusCode)
				continue
			}
			return Result{}, fmt.Errorf("ocr service error: status=%d body=%s", resp.StatusCode, string(body))
		}

		var out Result
		if err := json.Unmarshal(body, &out); err != nil {
			return Result{}, fmt.Errorf("decode ocr response: %w", err)
		}
		return out, nil
	}

	if lastErr == nil {
		lastErr = errors.New("ocr request failed")
	}
	return Result{}, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
