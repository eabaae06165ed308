package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pep299/news-summarizer/internal/model"
)

const maxBodyBytes = 5 << 20

// ErrContentNotFound is returned when an article page has no element
// matching the rule's content selector.
var ErrContentNotFound = errors.New("could not find content container")

// FetchError wraps network, status and parse failures for a single page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the text shown to users in place of an article body.
func Diagnostic(err error) string {
	if errors.Is(err, ErrContentNotFound) {
		return "❌ Could not find content div."
	}
	return fmt.Sprintf("❌ Error fetching article: %v", err)
}

// Client scrapes search results and article pages for one site
type Client struct {
	rule       Rule
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a new scraper client
func NewClient(rule Rule, userAgent string, timeout time.Duration) *Client {
	return &Client{
		rule:      rule,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DiscoverLinks searches the site for topic and returns at most maxLinks
// article links in page order. Failures of the search request are returned.
func (c *Client) DiscoverLinks(ctx context.Context, topic string, maxLinks int) ([]model.ArticleLink, error) {
	if maxLinks <= 0 {
		return []model.ArticleLink{}, nil
	}

	searchURL, err := c.searchURL(topic)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, searchURL.String())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	links, err := ParseLinks(body, searchURL, c.rule, maxLinks)
	if err != nil {
		return nil, &FetchError{URL: searchURL.String(), Err: err}
	}
	return links, nil
}

// FetchArticle downloads an article page and returns its body paragraphs
// joined by newlines.
func (c *Client) FetchArticle(ctx context.Context, articleURL string) (string, error) {
	body, err := c.fetch(ctx, articleURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	text, err := ParseArticle(body, c.rule)
	if err != nil && !errors.Is(err, ErrContentNotFound) {
		return "", &FetchError{URL: articleURL, Err: err}
	}
	return text, err
}

func (c *Client) searchURL(topic string) (*url.URL, error) {
	u, err := url.Parse(c.rule.SearchURL)
	if err != nil {
		return nil, fmt.Errorf("parsing search URL: %w", err)
	}
	q := u.Query()
	q.Set(c.rule.QueryParam, topic)
	u.RawQuery = q.Encode()
	return u, nil
}

// fetch issues a GET and returns the body of a 2xx response
func (c *Client) fetch(ctx context.Context, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &FetchError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxBodyBytes), resp.Body}, nil
}

// ParseLinks extracts article links from a search results page. Relative
// hrefs are resolved against base. Headings without an anchor, a title or a
// usable http(s) URL are skipped.
func ParseLinks(r io.Reader, base *url.URL, rule Rule, maxLinks int) ([]model.ArticleLink, error) {
	links := []model.ArticleLink{}
	if maxLinks <= 0 {
		return links, nil
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find(rule.TitleSelector).EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		anchor := heading.Find("a[href]").First()
		if anchor.Length() == 0 {
			return true
		}

		title := strings.TrimSpace(anchor.Text())
		href, _ := anchor.Attr("href")
		link, ok := resolveLink(base, href)
		if title == "" || !ok {
			return true
		}

		links = append(links, model.ArticleLink{Title: title, URL: link})
		return len(links) < maxLinks
	})

	return links, nil
}

// ParseArticle returns the non-empty paragraphs inside the rule's content
// container, joined by newlines in document order.
func ParseArticle(r io.Reader, rule Rule) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	container := doc.Find(rule.ContentSelector).First()
	if container.Length() == 0 {
		return "", ErrContentNotFound
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, "\n"), nil
}

func resolveLink(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if (ref.Scheme != "http" && ref.Scheme != "https") || ref.Host == "" {
		return "", false
	}
	return ref.String(), true
}
