package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"pagebrief/internal/core"
	"pagebrief/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultUserAgent mimics a desktop browser; many sites refuse Go's default agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	// DefaultTimeout bounds the single GET issued per page.
	DefaultTimeout = 10 * time.Second
	// DefaultMinTextLength is the shortest extracted text considered usable.
	DefaultMinTextLength = 50
	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes = 10 << 20
)

// nonContentSelector lists the subtrees dropped before text extraction.
const nonContentSelector = "script, style, nav, footer"

// Options configures a Fetcher. Zero values fall back to the defaults above.
type Options struct {
	UserAgent     string
	Timeout       time.Duration
	MinTextLength int
	MaxBodyBytes  int64
	HTTPClient    *http.Client
}

// Fetcher retrieves a page and reduces it to normalized plain text.
type Fetcher struct {
	client        *http.Client
	userAgent     string
	minTextLength int
	maxBodyBytes  int64
}

// NewFetcher creates a Fetcher from options.
func NewFetcher(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = DefaultMinTextLength
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	} else if client.Timeout == 0 {
		// Clone so the caller's client is not mutated
		c := *client
		c.Timeout = opts.Timeout
		client = &c
	}

	return &Fetcher{
		client:        client,
		userAgent:     opts.UserAgent,
		minTextLength: opts.MinTextLength,
		maxBodyBytes:  opts.MaxBodyBytes,
	}
}

// NormalizeURL trims the input and prefixes https:// when no http(s) scheme is present.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}

// FetchArticle fetches rawURL and returns its extracted text as a core.Article.
// Transport failures and non-2xx responses yield *FetchError; pages whose text
// is shorter than the configured minimum yield *TooShortError.
func (f *Fetcher) FetchArticle(ctx context.Context, rawURL string) (*core.Article, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("empty URL")}
	}
	target := NormalizeURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,application/pdf;q=0.8,*/*;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	// One byte past the limit tells a cut body from one that fits exactly
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(body)) > f.maxBodyBytes {
		body = body[:f.maxBodyBytes]
		logger.Warn("Response body truncated", "url", target, "max_body_bytes", f.maxBodyBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	var title, text string
	if isPDF(contentType, body) {
		title, text, err = ExtractPDFText(body)
	} else {
		title, text, err = extractHTML(body, contentType)
	}
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}

	if n := utf8.RuneCountInString(text); n < f.minTextLength {
		return nil, &TooShortError{URL: target, Length: n, Min: f.minTextLength}
	}

	return &core.Article{
		URL:         target,
		Title:       title,
		CleanedText: text,
		DateFetched: time.Now().UTC(),
	}, nil
}

// extractHTML decodes body to UTF-8 using the Content-Type charset or the
// page's meta declaration, then extracts its text.
func extractHTML(body []byte, contentType string) (string, string, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode page: %w", err)
	}
	return ExtractText(r)
}

// ExtractText parses HTML from r, drops script/style/nav/footer subtrees and
// returns the page title together with the whitespace-normalized visible text.
func ExtractText(r io.Reader) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := extractTitle(doc)

	doc.Find(nonContentSelector).Remove()

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}

	return title, NormalizeWhitespace(strings.Join(parts, " ")), nil
}

// collectText appends every text node under n. Adjacent block elements are
// separated so that "<p>a</p><p>b</p>" does not collapse into "ab".
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// NormalizeWhitespace collapses every run of whitespace into a single space and trims.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractTitle tries the title tag, then OpenGraph, then the first h1.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return NormalizeWhitespace(title)
	}

	if ogTitle, _ := doc.Find("meta[property='og:title']").Attr("content"); strings.TrimSpace(ogTitle) != "" {
		return NormalizeWhitespace(ogTitle)
	}

	return NormalizeWhitespace(doc.Find("h1").First().Text())
}
