package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultURL is the hosted BART summarization model.
	DefaultURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

	// MaxInputChars is how much article text is sent to the model.
	MaxInputChars = 2000

	minSummaryLength = 250
	maxSummaryLength = 500
)

var (
	// ErrEmptyInput is returned without calling the API when there is nothing to summarize.
	ErrEmptyInput = errors.New("no content to summarize")

	// ErrTimeout is returned when the summarization call exceeds its deadline.
	ErrTimeout = errors.New("summarization request timed out")
)

// UnexpectedResponseError carries a response body that did not contain a summary.
type UnexpectedResponseError struct {
	StatusCode int
	Raw        string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response (status %d): %s", e.StatusCode, e.Raw)
}

// Diagnostic returns the text shown to users in place of a summary.
func Diagnostic(err error) string {
	var unexpected *UnexpectedResponseError
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "No content to summarize."
	case errors.As(err, &unexpected):
		return fmt.Sprintf("⚠️ Could not summarize. API returned: %s", unexpected.Raw)
	default:
		return fmt.Sprintf("Error summarizing text: %v", err)
	}
}

// Client handles Hugging Face Inference API operations
type Client struct {
	apiToken   string
	url        string
	httpClient *http.Client
}

// NewClient creates a new Hugging Face API client
func NewClient(apiToken, url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		apiToken: apiToken,
		url:      url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// summarizeRequest represents the request structure for the inference API
type summarizeRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters summarizeOptions `json:"parameters"`
}

type summarizeOptions struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

// Summarize sends the first MaxInputChars characters of text to the model
// and returns the generated summary.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	body, err := json.Marshal(summarizeRequest{
		Inputs: Truncate(text, MaxInputChars),
		Parameters: summarizeOptions{
			MinLength: minSummaryLength,
			MaxLength: maxSummaryLength,
			DoSample:  false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("reading response body: %w", err)
	}

	return parseSummary(resp.StatusCode, raw)
}

// parseSummary accepts [{"summary_text": "..."}]; any other JSON shape is
// reported with the raw body. The status code is not checked first because
// the API reports errors as JSON objects.
func parseSummary(statusCode int, raw []byte) (string, error) {
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decoding response (status %d): %w", statusCode, err)
	}

	if items, ok := payload.([]interface{}); ok && len(items) > 0 {
		if first, ok := items[0].(map[string]interface{}); ok {
			if summary, ok := first["summary_text"].(string); ok {
				return summary, nil
			}
		}
	}

	return "", &UnexpectedResponseError{StatusCode: statusCode, Raw: string(raw)}
}

// Truncate returns the first limit characters of text.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
