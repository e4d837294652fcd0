package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is a desktop browser user agent used for page fetches
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

const maxPageSize = 5 << 20

// contentSelectors are tried in order when trafilatura finds nothing
var contentSelectors = []string{
	"article", ".article-content", ".post-content", ".entry-content", ".content", "main", ".main-content",
}

// ErrNoContent is returned when a page has no extractable text
var ErrNoContent = errors.New("no text content")

// HTTPExtractor fetches html pages and extracts article text
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
	maxLength int
}

// NewHTTPExtractor creates an extractor. Extracted text is capped to maxLength characters, 0 means no cap.
func NewHTTPExtractor(timeout time.Duration, userAgent string, maxLength int) *HTTPExtractor {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxLength: maxLength,
	}
}

// Document fetches a page and parses it for selector queries
func (e *HTTPExtractor) Document(ctx context.Context, urlStr string) (*goquery.Document, error) {
	body, err := e.fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", urlStr, err)
	}
	doc.Url, _ = url.Parse(urlStr)
	return doc, nil
}

// Extract retrieves the page and returns its main text with whitespace collapsed
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	body, err := e.fetch(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text := ""
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}
	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	switch {
	case err != nil:
		lgr.Printf("[DEBUG] trafilatura failed for %s, using selectors: %v", urlStr, err)
	case result != nil:
		text = result.ContentText
	}

	if strings.TrimSpace(text) == "" {
		doc, derr := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if derr != nil {
			return "", fmt.Errorf("parse html from %s: %w", urlStr, derr)
		}
		text = SelectText(doc)
	}

	text = Truncate(CollapseSpaces(text), e.maxLength)
	if text == "" {
		return "", fmt.Errorf("extract %s: %w", urlStr, ErrNoContent)
	}
	return text, nil
}

// SelectText returns the text of the first matching content selector, falling back to body.
// Script and style elements are dropped.
func SelectText(doc *goquery.Document) string {
	doc.Find("script, style").Remove()
	for _, sel := range contentSelectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if text := strings.TrimSpace(node.Text()); text != "" {
				return text
			}
		}
	}
	return strings.TrimSpace(doc.Find("body").First().Text())
}

// CollapseSpaces replaces whitespace runs with a single space
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n characters, n <= 0 disables the cap
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func (e *HTTPExtractor) fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addPageHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	// pages are decoded to utf-8 before parsing
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", urlStr, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", urlStr, err)
	}
	return body, nil
}
