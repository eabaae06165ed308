package mocks

import (
	"context"

	"github.com/pep299/news-summarizer/internal/model"
)

// Mock Article Repository
type MockArticleRepo struct {
	Links       []model.ArticleLink
	DiscoverErr error
	Texts       map[string]string
	FetchErrs   map[string]error

	DiscoverCalls int
	FetchedURLs   []string
}

func (m *MockArticleRepo) DiscoverLinks(ctx context.Context, topic string, maxLinks int) ([]model.ArticleLink, error) {
	m.DiscoverCalls++
	if m.DiscoverErr != nil {
		return nil, m.DiscoverErr
	}
	if maxLinks < 0 {
		maxLinks = 0
	}
	if maxLinks < len(m.Links) {
		return m.Links[:maxLinks], nil
	}
	return m.Links, nil
}

func (m *MockArticleRepo) FetchArticle(ctx context.Context, url string) (string, error) {
	m.FetchedURLs = append(m.FetchedURLs, url)
	if err, ok := m.FetchErrs[url]; ok {
		return "", err
	}
	if text, ok := m.Texts[url]; ok {
		return text, nil
	}
	return "article body for " + url, nil
}
