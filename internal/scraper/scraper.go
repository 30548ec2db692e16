package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"gigportal/internal/content"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const maxGalleryImages = 10

// Result holds the fields extracted from a remote article page. It is held
// only in memory and returned to the caller; nothing is persisted here.
type Result struct {
	Title         string   `json:"title"`
	Lead          string   `json:"lead"`
	Content       string   `json:"content"`
	CoverImage    string   `json:"cover_image"`
	GalleryImages []string `json:"gallery_images"`
	SourceURL     string   `json:"source_url"`
}

type Scraper struct {
	Client  *http.Client
	MinText int
}

func New(timeout time.Duration, minText int) *Scraper {
	if minText <= 0 {
		minText = 200
	}
	return &Scraper{
		Client:  &http.Client{Timeout: timeout},
		MinText: minText,
	}
}

// containerSelectors is the ordered strategy chain for locating the article
// body: structural tag first, then common class conventions, then main.
// The first selection whose text exceeds MinText wins; body is the fallback.
var containerSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".news-text",
	".content",
	"main",
}

// Scrape fetches a remote page and extracts structured article data for
// manual import. Fetch failures and non-OK statuses are returned as errors;
// extraction steps that find nothing yield empty fields instead.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Result, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !pageURL.IsAbs() {
		return nil, fmt.Errorf("invalid url: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: bad status %d", pageURL.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, err
	}

	base := resp.Request.URL
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	res := &Result{SourceURL: pageURL.String()}
	res.Title = extractTitle(doc)
	res.Lead = extractDescription(doc)
	res.CoverImage = absolutize(base, metaContent(doc, "meta[property='og:image']"))

	container := s.selectContainer(doc)
	cleanContainer(container)
	rewriteURLs(container, base)

	res.GalleryImages = collectImages(container, res.CoverImage)

	if htmlOut, err := container.Html(); err == nil {
		res.Content = strings.TrimSpace(htmlOut)
	}
	return res, nil
}

func extractTitle(doc *goquery.Document) string {
	if og := metaContent(doc, "meta[property='og:title']"); og != "" {
		return og
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	if og := metaContent(doc, "meta[property='og:description']"); og != "" {
		return og
	}
	return metaContent(doc, "meta[name='description']")
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func (s *Scraper) selectContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range containerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if len(strings.TrimSpace(sel.Text())) >= s.MinText {
			return sel
		}
	}
	return doc.Find("body").First()
}

func cleanContainer(sel *goquery.Selection) {
	sel.Find("script, style, noscript, nav, header, footer, aside, form").Remove()

	// iframes for recognized video hosts stay embeddable, the rest go
	sel.Find("iframe").Each(func(_ int, frame *goquery.Selection) {
		src, _ := frame.Attr("src")
		if !content.IsVideoHost(src) {
			frame.Remove()
		}
	})

	for _, n := range sel.Nodes {
		removeComments(n)
	}
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

func rewriteURLs(sel *goquery.Selection, base *url.URL) {
	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			img.SetAttr("src", absolutize(base, src))
		}
	})
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			a.SetAttr("href", absolutize(base, href))
		}
		a.SetAttr("target", "_blank")
		a.SetAttr("rel", "noopener")
	})
}

func absolutize(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || base == nil {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(u).String()
}

func collectImages(sel *goquery.Selection, cover string) []string {
	images := []string{}
	seen := map[string]bool{}
	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		if len(images) >= maxGalleryImages {
			return
		}
		src, _ := img.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || src == cover || seen[src] {
			return
		}
		seen[src] = true
		images = append(images, src)
	})
	return images
}
