package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MinLength int  `json:"min_length"`
		MaxLength int  `json:"max_length"`
		DoSample  bool `json:"do_sample"`
	} `json:"parameters"`
}

func TestNewClient(t *testing.T) {
	client := NewClient("hf_token", "", 30*time.Second)

	require.NotNil(t, client)
	assert.Equal(t, DefaultURL, client.url)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestSummarizeEmptyInput(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient("hf_token", server.URL, time.Second)

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := client.Summarize(context.Background(), input)
		require.ErrorIs(t, err, ErrEmptyInput)
		assert.Equal(t, "No content to summarize.", Diagnostic(err))
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSummarizeSuccess(t *testing.T) {
	var captured capturedRequest
	var authHeader, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		authHeader = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`[{"summary_text": "X"}]`))
	}))
	defer server.Close()

	client := NewClient("hf_token", server.URL, time.Second)

	summary, err := client.Summarize(context.Background(), "Some article text.")
	require.NoError(t, err)
	assert.Equal(t, "X", summary)

	assert.Equal(t, "Bearer hf_token", authHeader)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Some article text.", captured.Inputs)
	assert.Equal(t, 250, captured.Parameters.MinLength)
	assert.Equal(t, 500, captured.Parameters.MaxLength)
	assert.False(t, captured.Parameters.DoSample)
}

func TestSummarizeTruncatesInput(t *testing.T) {
	var captured capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`[{"summary_text": "short"}]`))
	}))
	defer server.Close()

	client := NewClient("hf_token", server.URL, time.Second)
	long := strings.Repeat("a", 1500) + strings.Repeat("é", 1500)

	_, err := client.Summarize(context.Background(), long)
	require.NoError(t, err)

	assert.Equal(t, 2000, len([]rune(captured.Inputs)))
	assert.Equal(t, strings.Repeat("a", 1500)+strings.Repeat("é", 500), captured.Inputs)
}

func TestSummarizeUnexpectedResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"error object", http.StatusServiceUnavailable, `{"error":"Model facebook/bart-large-cnn is currently loading","estimated_time":20.0}`},
		{"empty list", http.StatusOK, `[]`},
		{"missing field", http.StatusOK, `[{"generated_text":"nope"}]`},
		{"non-string summary", http.StatusOK, `[{"summary_text":42}]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				w.Write([]byte(test.body))
			}))
			defer server.Close()

			client := NewClient("hf_token", server.URL, time.Second)

			_, err := client.Summarize(context.Background(), "text")
			require.Error(t, err)

			var unexpected *UnexpectedResponseError
			require.True(t, errors.As(err, &unexpected))
			assert.Equal(t, test.status, unexpected.StatusCode)
			assert.Contains(t, Diagnostic(err), test.body)
			assert.True(t, strings.HasPrefix(Diagnostic(err), "⚠️ Could not summarize. API returned: "))
		})
	}
}

func TestSummarizeNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	}))
	defer server.Close()

	client := NewClient("hf_token", server.URL, time.Second)

	_, err := client.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(Diagnostic(err), "Error summarizing text: "))
}

func TestSummarizeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[{"summary_text": "late"}]`))
	}))
	defer server.Close()

	client := NewClient("hf_token", server.URL, 20*time.Millisecond)

	_, err := client.Summarize(context.Background(), "text")
	require.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, Diagnostic(err), "timed out")
}

func TestSummarizeConnectionError(t *testing.T) {
	client := NewClient("hf_token", "http://127.0.0.1:1", time.Second)

	_, err := client.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(Diagnostic(err), "Error summarizing text: "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "日本", Truncate("日本語", 2))
}
