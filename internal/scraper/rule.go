package scraper

// Rule describes how to search one site and where its article body lives.
// Markup changes on the site are handled by editing the rule, not the code.
type Rule struct {
	Name            string
	SearchURL       string
	QueryParam      string
	TitleSelector   string
	ContentSelector string
}

// DefaultRule returns the rule for Express Computer.
func DefaultRule() Rule {
	return Rule{
		Name:            "expresscomputer",
		SearchURL:       "https://www.expresscomputer.in/",
		QueryParam:      "s",
		TitleSelector:   "h2.title",
		ContentSelector: "div.entry-content.clearfix.single-post-content",
	}
}
