package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pep299/news-summarizer/internal/huggingface"
	"github.com/pep299/news-summarizer/internal/mocks"
	"github.com/pep299/news-summarizer/internal/model"
	"github.com/pep299/news-summarizer/internal/scraper"
)

func twoLinks() []model.ArticleLink {
	return []model.ArticleLink{
		{Title: "AI in banking", URL: "https://www.expresscomputer.in/news/ai-banking/"},
		{Title: "AI chips", URL: "https://www.expresscomputer.in/news/ai-chips/"},
	}
}

func TestDigestRunProcessesEachArticleOnce(t *testing.T) {
	articles := &mocks.MockArticleRepo{Links: twoLinks()}
	summaries := &mocks.MockSummaryRepo{Summary: "short summary"}
	digest := NewDigest(articles, summaries, 0)

	var emitted []Result
	report, err := digest.Run(context.Background(), Request{Topic: "AI", Count: 2}, func(r Result) error {
		emitted = append(emitted, r)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, articles.DiscoverCalls)
	assert.Equal(t, []string{twoLinks()[0].URL, twoLinks()[1].URL}, articles.FetchedURLs)
	assert.Equal(t, 2, summaries.Calls())

	require.Len(t, report.Results, 2)
	assert.Equal(t, 2, report.Found)
	assert.Equal(t, report.Results, emitted)
	for i, result := range report.Results {
		assert.Equal(t, i+1, result.Index)
		assert.True(t, result.OK())
		assert.Equal(t, "short summary", result.Message())
		assert.Equal(t, twoLinks()[i], result.Link)
	}
}

func TestDigestRunNoArticles(t *testing.T) {
	articles := &mocks.MockArticleRepo{}
	summaries := &mocks.MockSummaryRepo{}
	digest := NewDigest(articles, summaries, 0)

	report, err := digest.Run(context.Background(), Request{Topic: "", Count: 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Found)
	assert.Empty(t, report.Results)
	assert.Empty(t, articles.FetchedURLs)
	assert.Equal(t, 0, summaries.Calls())
}

func TestDigestRunDiscoveryError(t *testing.T) {
	articles := &mocks.MockArticleRepo{DiscoverErr: errors.New("connection refused")}
	digest := NewDigest(articles, &mocks.MockSummaryRepo{}, 0)

	_, err := digest.Run(context.Background(), Request{Topic: "AI", Count: 3}, nil)
	require.ErrorIs(t, err, ErrDiscovery)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDigestRunInvalidCount(t *testing.T) {
	articles := &mocks.MockArticleRepo{Links: twoLinks()}
	digest := NewDigest(articles, &mocks.MockSummaryRepo{}, 0)

	_, err := digest.Run(context.Background(), Request{Topic: "AI", Count: 0}, nil)
	require.ErrorIs(t, err, ErrInvalidCount)
	assert.Equal(t, 0, articles.DiscoverCalls)
}

func TestDigestRunExtractionFailureSkipsSummarizer(t *testing.T) {
	links := twoLinks()
	articles := &mocks.MockArticleRepo{
		Links:     links,
		FetchErrs: map[string]error{links[0].URL: scraper.ErrContentNotFound},
	}
	summaries := &mocks.MockSummaryRepo{}
	digest := NewDigest(articles, summaries, 0)

	report, err := digest.Run(context.Background(), Request{Topic: "AI", Count: 2}, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	first := report.Results[0]
	assert.False(t, first.OK())
	assert.Equal(t, StageExtract, first.Stage)
	assert.Equal(t, "❌ Could not find content div.", first.Message())

	assert.True(t, report.Results[1].OK())
	assert.Equal(t, 1, summaries.Calls())
	assert.Equal(t, []string{"article body for " + links[1].URL}, summaries.Inputs)
}

func TestDigestRunSummarizerFailure(t *testing.T) {
	articles := &mocks.MockArticleRepo{
		Links: twoLinks()[:1],
		Texts: map[string]string{twoLinks()[0].URL: "   "},
	}
	summaries := &mocks.MockSummaryRepo{Err: huggingface.ErrEmptyInput}
	digest := NewDigest(articles, summaries, 0)

	report, err := digest.Run(context.Background(), Request{Topic: "AI", Count: 1}, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.Equal(t, StageSummarize, result.Stage)
	assert.Equal(t, "No content to summarize.", result.Message())
}

func TestDigestRunPacesBetweenArticles(t *testing.T) {
	links := append(twoLinks(), model.ArticleLink{Title: "Cloud", URL: "https://www.expresscomputer.in/news/cloud/"})
	articles := &mocks.MockArticleRepo{Links: links}
	digest := NewDigest(articles, &mocks.MockSummaryRepo{}, 50*time.Millisecond)

	var starts []time.Time
	start := time.Now()
	_, err := digest.Run(context.Background(), Request{Topic: "AI", Count: 3}, func(r Result) error {
		starts = append(starts, time.Now())
		return nil
	})
	require.NoError(t, err)
	require.Len(t, starts, 3)

	assert.Less(t, starts[0].Sub(start), 40*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestDigestRunStopsOnCancel(t *testing.T) {
	articles := &mocks.MockArticleRepo{Links: twoLinks()}
	digest := NewDigest(articles, &mocks.MockSummaryRepo{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	report, err := digest.Run(ctx, Request{Topic: "AI", Count: 2}, func(r Result) error {
		cancel()
		return nil
	})
	require.Error(t, err)
	assert.Len(t, report.Results, 1)
	assert.Len(t, articles.FetchedURLs, 1)
}

func TestDigestRunStopsOnEmitError(t *testing.T) {
	articles := &mocks.MockArticleRepo{Links: twoLinks()}
	digest := NewDigest(articles, &mocks.MockSummaryRepo{}, 0)

	emitErr := errors.New("client went away")
	_, err := digest.Run(context.Background(), Request{Topic: "AI", Count: 2}, func(r Result) error {
		return emitErr
	})
	require.ErrorIs(t, err, emitErr)
	assert.Len(t, articles.FetchedURLs, 1)
}
