package newssummarizer

import (
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/pep299/news-summarizer/internal/transport/server"
)

func init() {
	functions.HTTP("SummarizeNews", SummarizeNews)
}

// SummarizeNews is the Cloud Functions entry point serving the search page
// and the JSON API.
func SummarizeNews(w http.ResponseWriter, r *http.Request) {
	server.HandleRequest(w, r)
}
