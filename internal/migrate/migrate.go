package migrate

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"gigportal/internal/importer"
	"gigportal/internal/scraper"
)

// Runner moves articles off a legacy site: it discovers article links on a
// listing page, scrapes each one and bulk-inserts them with the importer's
// title dedup. Fetches run sequentially in small batches with a delay in
// between; a per-item failure is recorded and the run continues.
type Runner struct {
	Scraper   *scraper.Scraper
	Importer  *importer.Importer
	Client    *http.Client
	BatchSize int
	Delay     time.Duration
}

func NewRunner(sc *scraper.Scraper, im *importer.Importer, timeout time.Duration, batchSize int, delay time.Duration) *Runner {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Runner{
		Scraper:   sc,
		Importer:  im,
		Client:    &http.Client{Timeout: timeout},
		BatchSize: batchSize,
		Delay:     delay,
	}
}

type Request struct {
	ListURL     string `json:"list_url"`
	LinkPattern string `json:"link_pattern"`
	Limit       int    `json:"limit"`
	RubricPath  string `json:"rubric_path"`
}

type Result struct {
	Discovered int      `json:"discovered"`
	Inserted   int      `json:"inserted"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors"`
}

func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	links, err := r.DiscoverLinks(ctx, req.ListURL, req.LinkPattern, req.Limit)
	if err != nil {
		return Result{}, err
	}

	result := Result{Discovered: len(links), Errors: []string{}}
	for start := 0; start < len(links); start += r.BatchSize {
		end := start + r.BatchSize
		if end > len(links) {
			end = len(links)
		}

		entries := make([]importer.NewsEntry, 0, end-start)
		for _, link := range links[start:end] {
			scraped, err := r.Scraper.Scrape(ctx, link)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", link, err))
				continue
			}
			if scraped.Title == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: no title", link))
				continue
			}
			entries = append(entries, importer.NewsEntry{
				Title:      scraped.Title,
				Lead:       scraped.Lead,
				Content:    scraped.Content,
				CoverImage: scraped.CoverImage,
				Images:     scraped.GalleryImages,
				RubricPath: req.RubricPath,
				SourceURL:  scraped.SourceURL,
			})
		}

		report := r.Importer.ImportNews(ctx, entries)
		result.Inserted += report.Inserted
		result.Skipped += report.Skipped
		result.Errors = append(result.Errors, report.Errors...)

		if end < len(links) && r.Delay > 0 {
			log.Printf("migrate: batch done (%d/%d), sleeping %s", end, len(links), r.Delay)
			time.Sleep(r.Delay)
		}
	}
	return result, nil
}

// DiscoverLinks collects article links from a legacy listing page: every
// same-host anchor whose path contains the pattern, absolutized and
// deduplicated, in document order.
func (r *Runner) DiscoverLinks(ctx context.Context, listURL, pattern string, limit int) ([]string, error) {
	base, err := url.Parse(strings.TrimSpace(listURL))
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("invalid list url: %q", listURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "gigportal-migrator/1.0")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: bad status %d", base.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	links := []string{}
	seen := map[string]bool{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				link := resolveArticleLink(base, attr.Val, pattern)
				if link != "" && !seen[link] {
					seen[link] = true
					links = append(links, link)
				}
				break
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}
	return links, nil
}

func resolveArticleLink(base *url.URL, href, pattern string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u = base.ResolveReference(u)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host != base.Host {
		return ""
	}
	if pattern != "" && !strings.Contains(u.Path, pattern) {
		return ""
	}
	u.Fragment = ""
	return u.String()
}
