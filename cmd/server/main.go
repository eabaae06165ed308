package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pep299/news-summarizer/internal/application"
	"github.com/pep299/news-summarizer/internal/config"
	"github.com/pep299/news-summarizer/internal/transport/handler"
	"github.com/pep299/news-summarizer/internal/transport/server"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version")
	)
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}
	if *showVersion {
		fmt.Printf("news-summarizer %s\n", handler.Version)
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.HFAPIToken == "" {
		log.Println("Warning: HF_API_TOKEN is not set, summarization requests will be rejected")
	}

	app := application.New(cfg)
	httpServer := server.NewHTTPServer(cfg, server.NewRouter(app))

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s:%s", cfg.Host, cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func printUsage() {
	fmt.Println(`Express Computer news summarizer

Usage:
  server [flags]

Flags:
  -help       Show this help message
  -version    Show version

Environment:
  PORT, HOST                 Listen address (default 0.0.0.0:8080)
  HF_API_TOKEN               Hugging Face Inference API token
  HF_SUMMARIZER_URL          Summarization model endpoint
  ARTICLE_DELAY              Pause between articles (default 2s)
  MAX_ARTICLES               Upper bound for the article count (default 5)
  DEFAULT_ARTICLES           Article count when none is given (default 3)
  API_AUTH_TOKEN             Bearer token required by POST /api/v1/summarize

Endpoints:
  GET  /                     Search form
  GET  /search               Streamed summaries (?topic=&count=)
  GET  /api/v1/health        Health check
  POST /api/v1/summarize     JSON summaries {"topic": "...", "count": n}`)
}
