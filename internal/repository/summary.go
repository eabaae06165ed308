package repository

import (
	"context"

	"github.com/pep299/news-summarizer/internal/huggingface"
)

type SummaryRepository interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type summaryRepository struct {
	client *huggingface.Client
}

func NewSummaryRepository(client *huggingface.Client) SummaryRepository {
	return &summaryRepository{
		client: client,
	}
}

func (s *summaryRepository) Summarize(ctx context.Context, text string) (string, error) {
	return s.client.Summarize(ctx, text)
}
