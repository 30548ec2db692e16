package content

import "github.com/microcosm-cc/bluemonday"

var articlePolicy = buildArticlePolicy()

// Sanitize strips unsafe markup from stored rich-text while preserving the
// structural HTML the editor produces.
func Sanitize(raw string) string {
	return articlePolicy.Sanitize(raw)
}

func buildArticlePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("article", "section", "div", "p", "span", "br")
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("blockquote", "pre", "code")
	p.AllowElements("b", "strong", "i", "em", "u", "s", "del", "ins", "mark", "sub", "sup")
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption")
	p.AllowElements("figure", "figcaption", "hr")

	p.AllowStandardURLs()
	p.AllowRelativeURLs(true)
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowURLSchemes("http", "https", "mailto")

	return p
}
