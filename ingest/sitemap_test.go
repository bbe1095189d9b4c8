package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/triage/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSitemapServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>`)
		fmt.Fprint(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
		for path := range pages {
			fmt.Fprintf(w, "<url><loc>%s%s</loc></url>", server.URL, path)
		}
		fmt.Fprint(w, `</urlset>`)
	})

	for path, body := range pages {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		})
	}

	return server
}

func TestSitemapLoader_Load(t *testing.T) {
	server := newSitemapServer(t, map[string]string{
		"/docs/setup": `<html><head><style>p{color:red}</style></head>` +
			`<body><h1>Setup</h1><p>Install the agent first.</p></body></html>`,
		"/docs/faq": `<html><body><p>Frequently asked questions.</p>` +
			`<script>trackPage()</script></body></html>`,
	})

	loader := NewSitemapLoader(WithFetchPoolSize(2))
	docs, errs := loader.Load(context.Background(), server.URL+"/sitemap.xml")

	require.Empty(t, errs)
	require.Len(t, docs, 2)

	byOrigin := make(map[string]*core.SourceDocument)
	for _, doc := range docs {
		assert.Equal(t, core.SourceKindWebPage, doc.Kind)
		byOrigin[doc.Origin] = doc
	}

	setup := byOrigin[server.URL+"/docs/setup"]
	require.NotNil(t, setup)
	assert.Contains(t, setup.Text, "Install the agent first.")
	assert.NotContains(t, setup.Text, "color:red")

	faq := byOrigin[server.URL+"/docs/faq"]
	require.NotNil(t, faq)
	assert.Contains(t, faq.Text, "Frequently asked questions.")
	assert.NotContains(t, faq.Text, "trackPage")
}

func TestSitemapLoader_PageFailureIsIsolated(t *testing.T) {
	server := newSitemapServer(t, map[string]string{
		"/ok": `<html><body>good page</body></html>`,
	})

	// Point one loc at a missing page by serving a sitemap with both URLs.
	mux := http.NewServeMux()
	broken := httptest.NewServer(mux)
	t.Cleanup(broken.Close)
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/ok</loc></url><url><loc>%s/missing</loc></url></urlset>`,
			server.URL, server.URL)
	})

	loader := NewSitemapLoader()
	docs, errs := loader.Load(context.Background(), broken.URL+"/sitemap.xml")

	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Text, "good page")
	require.Len(t, errs, 1)

	var docErr *DocumentError
	require.ErrorAs(t, errs[0], &docErr)
	assert.Equal(t, server.URL+"/missing", docErr.Origin)
}

func TestSitemapLoader_EmptySitemap(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<urlset></urlset>`)
	})

	loader := NewSitemapLoader()
	docs, errs := loader.Load(context.Background(), server.URL+"/sitemap.xml")

	assert.Empty(t, docs)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrEmptyDocument)
}
