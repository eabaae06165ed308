package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pep299/news-summarizer/internal/service"
	"github.com/pep299/news-summarizer/internal/transport/response"
)

// Version is reported by the health endpoint and the server's -version flag.
const Version = "v1.0.0"

type API struct {
	digest          *service.Digest
	maxArticles     int
	defaultArticles int
}

func NewAPI(digest *service.Digest, maxArticles, defaultArticles int) *API {
	return &API{
		digest:          digest,
		maxArticles:     maxArticles,
		defaultArticles: defaultArticles,
	}
}

type summarizeRequest struct {
	Topic string `json:"topic"`
	Count *int   `json:"count"`
}

type articleSummary struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
	OK      bool   `json:"ok"`
	Stage   string `json:"stage,omitempty"`
	Error   string `json:"error,omitempty"`
}

type summarizeData struct {
	Topic      string           `json:"topic"`
	Found      int              `json:"found"`
	DurationMs int64            `json:"duration_ms"`
	Articles   []articleSummary `json:"articles"`
}

// Health reports liveness
func (h *API) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   Version,
	})
}

// Summarize runs a full digest and returns every article at once.
func (h *API) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid JSON")
		return
	}

	count := h.defaultArticles
	if req.Count != nil {
		count = *req.Count
	}
	if count < 1 || count > h.maxArticles {
		response.WriteBadRequest(w, fmt.Sprintf("count must be between 1 and %d", h.maxArticles))
		return
	}

	report, err := h.digest.Run(r.Context(), service.Request{Topic: req.Topic, Count: count}, nil)
	if err != nil {
		if errors.Is(err, service.ErrDiscovery) {
			response.WriteBadGateway(w, err.Error())
			return
		}
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data := summarizeData{
		Topic:      report.Topic,
		Found:      report.Found,
		DurationMs: report.Duration.Milliseconds(),
		Articles:   make([]articleSummary, 0, len(report.Results)),
	}
	for _, result := range report.Results {
		article := articleSummary{
			Index:   result.Index,
			Title:   result.Link.Title,
			URL:     result.Link.URL,
			Summary: result.Message(),
			OK:      result.OK(),
			Stage:   string(result.Stage),
		}
		if result.Err != nil {
			article.Error = result.Err.Error()
		}
		data.Articles = append(data.Articles, article)
	}

	message := fmt.Sprintf("Found %d article(s) on '%s'", report.Found, report.Topic)
	if report.Found == 0 {
		message = "No articles found for this topic."
	}
	response.WriteSuccess(w, message, data)
}
