// Package llm implements the Gemini API client that backs every generation
// flow, with bounded retries on rate limits.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	// GeminiAPIEndpoint is the public generative language API host.
	GeminiAPIEndpoint = "https://generativelanguage.googleapis.com"
	// GeminiModel is the default model.
	GeminiModel = "gemini-2.5-flash"
	// MaxAttempts caps the total number of tries for one generation.
	MaxAttempts = 5
)

// Client is a Gemini API client. Rate-limited requests are retried up to
// MaxAttempts total tries with exponential backoff; every other failure is
// terminal on first occurrence.
type Client struct {
	apiKey      string
	model       string
	endpoint    string
	httpClient  *http.Client
	backoffUnit time.Duration

	// OnRetry, when set, is called before each backoff wait so callers can
	// surface the attempt in progress.
	OnRetry func(attempt int, wait time.Duration)
}

// NewClient creates a new Gemini API client.
func NewClient(apiKey, model string) (client *Client, err error) {
	if apiKey == "" {
		err = errors.Wrap(ErrNotConfigured, "missing API key")
		return client, err
	}
	if model == "" {
		model = GeminiModel // Default to Flash
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: GeminiAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		backoffUnit: time.Second,
	}
	return client, err
}

// Generate runs one generation against the service. Only rate-limit
// failures are retried; attempt k waits 2^k + 1 backoff units before the
// next try. The returned text is whitespace-trimmed but otherwise verbatim.
func (c *Client) Generate(ctx context.Context, req Request) (text string, err error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		text, err = c.sendRequest(ctx, req)
		if err == nil {
			text = strings.TrimSpace(text)
			return text, err
		}

		if !RateLimited(err) {
			err = errors.Wrap(err, "generation request failed")
			return text, err
		}

		if attempt == MaxAttempts-1 {
			break
		}

		wait := time.Duration(1<<uint(attempt)+1) * c.backoffUnit
		log.Warn().
			Int("attempt", attempt+1).
			Dur("wait", wait).
			Msg("rate limit hit, backing off")
		if c.OnRetry != nil {
			c.OnRetry(attempt+1, wait)
		}

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "generation canceled during backoff")
			return text, err
		}
	}

	err = errors.Wrapf(ErrRateLimited, "giving up after %d attempts", MaxAttempts)
	return text, err
}

// sendRequest sends a single generateContent request.
func (c *Client) sendRequest(ctx context.Context, req Request) (responseText string, err error) {
	// Build request
	genReq := GeminiRequest{
		Contents: []GeminiContent{
			{
				Role:  "user",
				Parts: []GeminiPart{{Text: req.UserPrompt}},
			},
		},
	}
	if req.SystemInstruction != "" {
		genReq.SystemInstruction = &GeminiContent{
			Parts: []GeminiPart{{Text: req.SystemInstruction}},
		}
	}

	var reqBody []byte
	reqBody, err = json.Marshal(genReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	// Create HTTP request
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)

	// Send request
	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	// Read response body
	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	// Classify non-200 responses via the error envelope
	if resp.StatusCode != http.StatusOK {
		err = newServiceError(resp.StatusCode, respBody)
		return responseText, err
	}

	// Parse Gemini response
	var genResp GeminiResponse
	err = json.Unmarshal(respBody, &genResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Gemini response: %s", string(respBody))
		return responseText, err
	}

	// Extract text content
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		err = errors.New("no content in Gemini response")
		return responseText, err
	}

	responseText = genResp.Candidates[0].Content.Parts[0].Text

	return responseText, err
}

// newServiceError builds a ServiceError from the standard error envelope,
// falling back to the raw body when the envelope is absent.
func newServiceError(statusCode int, body []byte) (err error) {
	svcErr := &ServiceError{
		StatusCode: statusCode,
		Status:     gjson.GetBytes(body, "error.status").String(),
		Message:    gjson.GetBytes(body, "error.message").String(),
	}
	if svcErr.Message == "" {
		svcErr.Message = strings.TrimSpace(string(body))
	}
	err = svcErr
	return err
}
