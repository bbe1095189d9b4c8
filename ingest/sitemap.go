package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/triage/core"
	"golang.org/x/net/html"
)

const defaultFetchTimeout = 30 * time.Second

// PageSource is a single web page referenced by a sitemap.
type PageSource struct {
	URL    string
	Client *http.Client
}

var _ Source = (*PageSource)(nil)

// Kind returns core.SourceKindWebPage.
func (s *PageSource) Kind() core.SourceKind {
	return core.SourceKindWebPage
}

// Origin returns the page URL.
func (s *PageSource) Origin() string {
	return s.URL
}

// Extract fetches the page and strips its markup down to text.
func (s *PageSource) Extract(ctx context.Context) (string, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", documentError(s.URL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", documentError(s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", documentError(s.URL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	text, err := htmlToText(resp.Body)
	if err != nil {
		return "", documentError(s.URL, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", documentError(s.URL, ErrNoExtractableText)
	}

	return text, nil
}

// sitemapIndex matches the <urlset> document format.
type sitemapIndex struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// SitemapLoader fetches every page listed in a sitemap.
// Pages are fetched concurrently through a bounded worker pool; extraction
// failures fail only the affected page.
type SitemapLoader struct {
	client   *http.Client
	poolSize int
	logger   *slog.Logger
}

// SitemapOption configures a SitemapLoader.
type SitemapOption func(*SitemapLoader)

// WithHTTPClient sets the HTTP client used for sitemap and page fetches.
func WithHTTPClient(client *http.Client) SitemapOption {
	return func(l *SitemapLoader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithFetchPoolSize sets the number of concurrent page fetches.
// Default is 4.
func WithFetchPoolSize(size int) SitemapOption {
	return func(l *SitemapLoader) {
		if size >= 1 {
			l.poolSize = size
		}
	}
}

// WithSitemapLogger sets a custom logger.
// Default is slog.Default().
func WithSitemapLogger(logger *slog.Logger) SitemapOption {
	return func(l *SitemapLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewSitemapLoader creates a sitemap loader.
func NewSitemapLoader(opts ...SitemapOption) *SitemapLoader {
	l := &SitemapLoader{
		client:   &http.Client{Timeout: defaultFetchTimeout},
		poolSize: 4,
		logger:   slog.Default().With("component", "sitemap-loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the sitemap at url and extracts every listed page.
// Returns the successfully extracted documents in sitemap order, plus one
// error per failed page.
func (l *SitemapLoader) Load(ctx context.Context, url string) ([]*core.SourceDocument, []error) {
	locs, err := l.fetchLocations(ctx, url)
	if err != nil {
		return nil, []error{err}
	}

	if len(locs) == 0 {
		return nil, []error{documentError(url, ErrEmptyDocument)}
	}

	l.logger.Info("loading sitemap pages", "sitemap", url, "pages", len(locs))

	pool, err := ants.NewPool(l.poolSize)
	if err != nil {
		return nil, []error{err}
	}
	defer pool.Release()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		docs = make([]*core.SourceDocument, len(locs))
		errs []error
	)

	for i, loc := range locs {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			doc, err := Extract(ctx, &PageSource{URL: loc, Client: l.client})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Warn("failed to load page", "url", loc, "err", err)
				errs = append(errs, err)
				return
			}
			docs[i] = doc
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()

	// Compact while preserving sitemap order.
	loaded := make([]*core.SourceDocument, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			loaded = append(loaded, doc)
		}
	}

	return loaded, errs
}

// fetchLocations downloads and parses the sitemap XML.
func (l *SitemapLoader) fetchLocations(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, documentError(url, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, documentError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, documentError(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var index sitemapIndex
	if err := xml.NewDecoder(resp.Body).Decode(&index); err != nil {
		return nil, documentError(url, err)
	}

	locs := make([]string, 0, len(index.URLs))
	for _, u := range index.URLs {
		loc := strings.TrimSpace(u.Loc)
		if loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs, nil
}

// htmlToText walks the parsed HTML tree collecting text nodes, skipping
// script and style subtrees.
func htmlToText(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return b.String(), nil
}
