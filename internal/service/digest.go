package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/pep299/news-summarizer/internal/huggingface"
	"github.com/pep299/news-summarizer/internal/model"
	"github.com/pep299/news-summarizer/internal/repository"
	"github.com/pep299/news-summarizer/internal/scraper"
)

var (
	// ErrDiscovery wraps failures of the search request.
	ErrDiscovery = errors.New("article discovery failed")

	ErrInvalidCount = errors.New("article count must be at least 1")
)

// Stage names the step that failed for an article.
type Stage string

const (
	StageExtract   Stage = "extract"
	StageSummarize Stage = "summarize"
)

// Request is one search-and-summarize run.
type Request struct {
	Topic string
	Count int
}

// Result is the outcome for a single article.
type Result struct {
	Index   int
	Total   int
	Link    model.ArticleLink
	Summary string
	Err     error
	Stage   Stage
}

// OK reports whether the article was extracted and summarized.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message is the text to display under the article: the summary, or a
// diagnostic for the failed stage.
func (r Result) Message() string {
	switch {
	case r.Err == nil:
		return r.Summary
	case r.Stage == StageExtract:
		return scraper.Diagnostic(r.Err)
	default:
		return huggingface.Diagnostic(r.Err)
	}
}

// Report summarizes a finished run.
type Report struct {
	Topic    string
	Found    int
	Results  []Result
	Duration time.Duration
}

// Digest searches for articles and summarizes them one at a time.
type Digest struct {
	articles  repository.ArticleRepository
	summaries repository.SummaryRepository
	delay     time.Duration
}

func NewDigest(
	articles repository.ArticleRepository,
	summaries repository.SummaryRepository,
	delay time.Duration,
) *Digest {
	return &Digest{
		articles:  articles,
		summaries: summaries,
		delay:     delay,
	}
}

// Run discovers up to req.Count articles and processes each exactly once,
// in order, pausing between articles. emit, when non-nil, is called as soon
// as each result is ready; an emit error stops the run.
func (d *Digest) Run(ctx context.Context, req Request, emit func(Result) error) (*Report, error) {
	logger := log.New(funcframework.LogWriter(ctx), "", 0)

	if req.Count < 1 {
		return nil, ErrInvalidCount
	}

	start := time.Now()
	logger.Printf("Digest started topic=%q count=%d", req.Topic, req.Count)

	links, err := d.articles.DiscoverLinks(ctx, req.Topic, req.Count)
	if err != nil {
		logger.Printf("Error discovering articles topic=%q: %v", req.Topic, err)
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}

	report := &Report{
		Topic:   req.Topic,
		Found:   len(links),
		Results: make([]Result, 0, len(links)),
	}

	if len(links) == 0 {
		logger.Printf("No articles found topic=%q", req.Topic)
		report.Duration = time.Since(start)
		return report, nil
	}

	pacer := newPacer(d.delay)
	for i, link := range links {
		if err := pacer.Wait(ctx); err != nil {
			return report, fmt.Errorf("waiting before article %d: %w", i+1, err)
		}

		result := d.processArticle(ctx, logger, i+1, link)
		result.Total = len(links)
		report.Results = append(report.Results, result)

		if emit != nil {
			if err := emit(result); err != nil {
				return report, fmt.Errorf("emitting article %d: %w", i+1, err)
			}
		}
	}

	report.Duration = time.Since(start)
	logger.Printf("Digest completed topic=%q found=%d duration_ms=%d", req.Topic, len(links), report.Duration.Milliseconds())
	return report, nil
}

func (d *Digest) processArticle(ctx context.Context, logger *log.Logger, index int, link model.ArticleLink) Result {
	result := Result{Index: index, Link: link}
	start := time.Now()

	text, err := d.articles.FetchArticle(ctx, link.URL)
	if err != nil {
		logger.Printf("Error extracting article url=%s: %v", link.URL, err)
		result.Err = err
		result.Stage = StageExtract
		return result
	}
	extractDuration := time.Since(start)

	summaryStart := time.Now()
	summary, err := d.summaries.Summarize(ctx, text)
	if err != nil {
		logger.Printf("Error summarizing article url=%s: %v", link.URL, err)
		result.Err = err
		result.Stage = StageSummarize
		return result
	}
	result.Summary = summary

	logger.Printf("Article processed index=%d title=%q text_length=%d extract_duration_ms=%d summary_duration_ms=%d",
		index, link.Title, len(text), extractDuration.Milliseconds(), time.Since(summaryStart).Milliseconds())
	return result
}
