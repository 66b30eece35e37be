package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
)

// Remote talks to a similarity service over HTTP with JSON bodies:
//
//	POST /score {"context": "...", "candidate": "..."} -> {"score": 0.5}
//	POST /rank  {"context": "...", "length": 5}        -> {"candidates": [{"word": "...", "score": 0.5}]}
//
// Calls are attempted once unless more attempts are configured.
type Remote struct {
	baseURL    string
	attempts   uint
	httpClient *http.Client
}

func NewRemote(baseURL string, timeout time.Duration, attempts int) *Remote {
	if attempts < 1 {
		attempts = 1
	}
	return &Remote{
		baseURL:    baseURL,
		attempts:   uint(attempts),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type scoreRequest struct {
	Context   string `json:"context"`
	Candidate string `json:"candidate"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

type rankRequest struct {
	Context string `json:"context"`
	Length  int    `json:"length"`
}

type rankResponse struct {
	Candidates []WordScore `json:"candidates"`
}

func (r *Remote) post(ctx context.Context, path string, req, resp any) error {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	logger := zerolog.Ctx(ctx)

	return retry.Do(
		func() error {
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path,
				bytes.NewReader(reqBody))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			httpReq.Header.Set("Content-Type", "application/json")

			httpResp, err := r.httpClient.Do(httpReq)
			if err != nil {
				return fmt.Errorf("failed to send request: %w", err)
			}
			defer httpResp.Body.Close()

			body, err := io.ReadAll(httpResp.Body)
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}
			if httpResp.StatusCode != http.StatusOK {
				err := fmt.Errorf("unexpected status %d: %s", httpResp.StatusCode, string(body))
				if httpResp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			if err := json.Unmarshal(body, resp); err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to unmarshal response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			logger.Warn().Err(err).Uint("n", n).Str("path", path).Msg("oracle-call-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (r *Remote) Score(ctx context.Context, contextPhrase, candidate string) (float64, error) {
	var resp scoreResponse
	if err := r.post(ctx, "/score", scoreRequest{contextPhrase, candidate}, &resp); err != nil {
		return 0, err
	}
	return max(resp.Score, 0), nil
}

func (r *Remote) Rank(ctx context.Context, contextPhrase string, length int) ([]WordScore, error) {
	var resp rankResponse
	if err := r.post(ctx, "/rank", rankRequest{contextPhrase, length}, &resp); err != nil {
		return nil, err
	}
	return sortRanked(resp.Candidates), nil
}
