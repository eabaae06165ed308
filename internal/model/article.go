package model

// ArticleLink is a search hit: the article title and where to fetch it.
type ArticleLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
