package handler

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/pep299/news-summarizer/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Page serves the interactive search form and streams results into it.
type Page struct {
	digest          *service.Digest
	maxArticles     int
	defaultArticles int
}

func NewPage(digest *service.Digest, maxArticles, defaultArticles int) *Page {
	return &Page{
		digest:          digest,
		maxArticles:     maxArticles,
		defaultArticles: defaultArticles,
	}
}

type formData struct {
	Topic   string
	Count   int
	Options []int
}

type foundData struct {
	Topic string
	Total int
}

// Index renders the empty form
func (p *Page) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	logger := log.New(funcframework.LogWriter(r.Context()), "", 0)
	if err := p.render(w, "header", p.form("", p.defaultArticles)); err != nil {
		logger.Printf("Error rendering page: %v", err)
		return
	}
	p.render(w, "footer", nil)
}

// Search runs the digest for the submitted topic and count, writing each
// article as soon as it is summarized.
func (p *Page) Search(w http.ResponseWriter, r *http.Request) {
	logger := log.New(funcframework.LogWriter(r.Context()), "", 0)

	topic := r.URL.Query().Get("topic")
	count := clampCount(r.URL.Query().Get("count"), p.defaultArticles, p.maxArticles)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	if err := p.render(w, "header", p.form(topic, count)); err != nil {
		logger.Printf("Error rendering page: %v", err)
		return
	}
	p.render(w, "searching", nil)
	flush()

	report, err := p.digest.Run(r.Context(), service.Request{Topic: topic, Count: count}, func(result service.Result) error {
		if result.Index == 1 {
			if err := p.render(w, "found", foundData{Topic: topic, Total: result.Total}); err != nil {
				return err
			}
		}
		if err := p.render(w, "article", result); err != nil {
			return err
		}
		flush()
		return nil
	})
	switch {
	case err != nil && report == nil:
		logger.Printf("Search failed topic=%q: %v", topic, err)
		p.render(w, "not_found", nil)
	case err != nil:
		logger.Printf("Search interrupted topic=%q: %v", topic, err)
	case report.Found == 0:
		p.render(w, "not_found", nil)
	}

	p.render(w, "footer", nil)
}

func (p *Page) form(topic string, count int) formData {
	options := make([]int, p.maxArticles)
	for i := range options {
		options[i] = i + 1
	}
	return formData{Topic: topic, Count: count, Options: options}
}

func (p *Page) render(w http.ResponseWriter, name string, data any) error {
	return pageTemplates.ExecuteTemplate(w, name, data)
}

// clampCount parses the count form value, falling back to def when it is
// missing or malformed and keeping it inside [1, max].
func clampCount(raw string, def, max int) int {
	count, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if count < 1 {
		return 1
	}
	if count > max {
		return max
	}
	return count
}
