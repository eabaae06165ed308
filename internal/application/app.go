package application

import (
	"github.com/pep299/news-summarizer/internal/config"
	"github.com/pep299/news-summarizer/internal/huggingface"
	"github.com/pep299/news-summarizer/internal/repository"
	"github.com/pep299/news-summarizer/internal/scraper"
	"github.com/pep299/news-summarizer/internal/service"
	"github.com/pep299/news-summarizer/internal/transport/handler"
)

// Application represents the application with all business logic components
type Application struct {
	Config      *config.Config
	Digest      *service.Digest
	PageHandler *handler.Page
	APIHandler  *handler.API
}

// New wires clients, repositories, the digest service and HTTP handlers
func New(cfg *config.Config) *Application {
	rule := scraper.DefaultRule()
	rule.SearchURL = cfg.SearchURL
	rule.QueryParam = cfg.SearchQueryParam
	rule.TitleSelector = cfg.TitleSelector
	rule.ContentSelector = cfg.ContentSelector

	// Clients
	scraperClient := scraper.NewClient(rule, cfg.UserAgent, cfg.ScraperTimeout)
	hfClient := huggingface.NewClient(cfg.HFAPIToken, cfg.SummarizerURL, cfg.SummarizerTimeout)

	// Repositories
	articleRepo := repository.NewArticleRepository(scraperClient)
	summaryRepo := repository.NewSummaryRepository(hfClient)

	// Services
	digest := service.NewDigest(articleRepo, summaryRepo, cfg.ArticleDelay)

	return &Application{
		Config:      cfg,
		Digest:      digest,
		PageHandler: handler.NewPage(digest, cfg.MaxArticles, cfg.DefaultArticles),
		APIHandler:  handler.NewAPI(digest, cfg.MaxArticles, cfg.DefaultArticles),
	}
}
