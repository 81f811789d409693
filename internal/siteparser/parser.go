package siteparser

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// SiteProfile is what we can scrape off a brand's homepage to pre-fill a
// brand record and enrich generation context.
type SiteProfile struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	SiteName    string    `json:"site_name,omitempty"`
	Description string    `json:"description,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
}

type Parser struct {
	httpClient *http.Client
	log        *zap.Logger
}

func NewParser(timeout time.Duration, log *zap.Logger) *Parser {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Parser{
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (p *Parser) FetchAndParse(ctx context.Context, url string) (*SiteProfile, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	profile := parseDocument(doc)
	profile.URL = url
	profile.FetchedAt = time.Now()
	return profile, nil
}

func parseDocument(doc *goquery.Document) *SiteProfile {
	profile := &SiteProfile{}

	profile.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok || strings.TrimSpace(content) == "" {
			return
		}
		content = strings.TrimSpace(content)

		name, _ := s.Attr("name")
		property, _ := s.Attr("property")

		switch {
		case name == "description" && profile.Description == "":
			profile.Description = content
		case property == "og:description" && profile.Description == "":
			profile.Description = content
		case property == "og:site_name":
			profile.SiteName = content
		case property == "og:title" && profile.Title == "":
			profile.Title = content
		case property == "og:image" && profile.ImageURL == "":
			profile.ImageURL = content
		case name == "keywords":
			profile.Keywords = splitKeywords(content)
		}
	})

	// Fall back to the first h1 when a page carries no usable title.
	if profile.Title == "" {
		profile.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	return profile
}

func splitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	var keywords []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
