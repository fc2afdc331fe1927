package brand

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Scraper performs best-effort extraction of readable text from a website.
// It is not a crawling engine: one GET, structural-element stripping, and a
// hard character budget.
type Scraper struct {
	client       *resty.Client
	contentLimit int
}

// NewScraper creates a scraper with the given fetch timeout and content budget
func NewScraper(timeout time.Duration, contentLimit int) *Scraper {
	return &Scraper{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", scraperUserAgent),
		contentLimit: contentLimit,
	}
}

// Fetch returns the cleaned page text, truncated to the content budget
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("website fetch failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("website returned status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		return "", fmt.Errorf("failed to parse website HTML: %w", err)
	}

	// Drop navigation chrome and non-content elements before extracting text
	doc.Find("script, style, nav, footer").Remove()

	text := doc.Text()
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	if len(text) > s.contentLimit {
		text = text[:s.contentLimit]
	}

	return text, nil
}
