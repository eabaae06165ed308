package repository

import (
	"context"

	"github.com/pep299/news-summarizer/internal/model"
	"github.com/pep299/news-summarizer/internal/scraper"
)

// ArticleRepository finds articles for a topic and loads their body text.
type ArticleRepository interface {
	DiscoverLinks(ctx context.Context, topic string, maxLinks int) ([]model.ArticleLink, error)
	FetchArticle(ctx context.Context, url string) (string, error)
}

type articleRepository struct {
	client *scraper.Client
}

func NewArticleRepository(client *scraper.Client) ArticleRepository {
	return &articleRepository{
		client: client,
	}
}

func (a *articleRepository) DiscoverLinks(ctx context.Context, topic string, maxLinks int) ([]model.ArticleLink, error) {
	return a.client.DiscoverLinks(ctx, topic, maxLinks)
}

func (a *articleRepository) FetchArticle(ctx context.Context, url string) (string, error) {
	return a.client.FetchArticle(ctx, url)
}
