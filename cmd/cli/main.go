package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pep299/news-summarizer/internal/application"
	"github.com/pep299/news-summarizer/internal/config"
	"github.com/pep299/news-summarizer/internal/service"
)

func main() {
	var (
		topic = flag.String("topic", "", "Topic to search for (empty lists recent articles)")
		count = flag.Int("count", 0, "Number of articles to summarize (default DEFAULT_ARTICLES)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	n := *count
	if n == 0 {
		n = cfg.DefaultArticles
	}
	if n < 1 || n > cfg.MaxArticles {
		log.Fatalf("count must be between 1 and %d", cfg.MaxArticles)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := application.New(cfg)

	fmt.Println("Searching articles...")
	report, err := app.Digest.Run(ctx, service.Request{Topic: *topic, Count: n}, func(r service.Result) error {
		if r.Index == 1 {
			fmt.Printf("Found %d article(s) on '%s'\n\n", r.Total, *topic)
		}
		fmt.Printf("### 🗞️ Article %d: [%s](%s)\n", r.Index, r.Link.Title, r.Link.URL)
		fmt.Println(r.Link.URL)
		fmt.Println()
		fmt.Println("**Summary:**")
		fmt.Println(r.Message())
		fmt.Println()
		fmt.Println("---")
		return nil
	})
	if err != nil && report == nil {
		log.Printf("Search failed: %v", err)
		fmt.Println("No articles found for this topic.")
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Processing interrupted: %v", err)
	}
	if report.Found == 0 {
		fmt.Println("No articles found for this topic.")
	}
}
