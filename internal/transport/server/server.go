package server

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"

	"github.com/pep299/news-summarizer/internal/application"
	"github.com/pep299/news-summarizer/internal/config"
	"github.com/pep299/news-summarizer/internal/transport/middleware"
	"github.com/pep299/news-summarizer/internal/transport/response"
)

// NewRouter maps the page and the JSON API onto the application's handlers
func NewRouter(app *application.Application) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusNotFound, "Not found")
	})

	// Interactive page
	r.HandleFunc("/", app.PageHandler.Index).Methods("GET")
	r.HandleFunc("/search", app.PageHandler.Search).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.CORS)
	api.Use(middleware.Logging)

	api.HandleFunc("/health", app.APIHandler.Health).Methods("GET", "OPTIONS")
	api.Handle("/summarize", middleware.Auth(app.Config.APIAuthToken)(http.HandlerFunc(app.APIHandler.Summarize))).Methods("POST", "OPTIONS")

	return r
}

// CreateHandler creates the main HTTP handler for the application
func CreateHandler() (http.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading config: %v\nStack:\n%s", err, debug.Stack())
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return NewRouter(application.New(cfg)), nil
}

// HandleRequest handles a single HTTP request (for Cloud Functions)
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	handler, err := CreateHandler()
	if err != nil {
		log.Printf("Failed to create handler: %v\nStack:\n%s", err, debug.Stack())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	handler.ServeHTTP(w, r)
}

// WriteTimeout is long enough for a search that streams MaxArticles
// articles, each allowed its full fetch and summarize timeouts plus the
// pause before it.
func WriteTimeout(cfg *config.Config) time.Duration {
	perArticle := cfg.ScraperTimeout + cfg.SummarizerTimeout + cfg.ArticleDelay
	return cfg.ScraperTimeout + time.Duration(cfg.MaxArticles)*perArticle + 30*time.Second
}

// NewHTTPServer builds the standalone server with timeouts sized for streaming
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: WriteTimeout(cfg),
		IdleTimeout:  60 * time.Second,
	}
}
