package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageFetcher_StripsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><head><title>Acme Roofing</title>
			<script>var x = 1;</script></head>
			<body><p>Call us at 832-810-7822 &amp; email info@example.com</p></body></html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	f := NewPageFetcher()
	text := f.FetchText(context.Background(), srv.URL)

	assert.Contains(t, text, "832-810-7822")
	assert.Contains(t, text, "info@example.com")
	assert.Contains(t, text, "&")
	assert.NotContains(t, text, "<p>")
	assert.NotContains(t, text, "var x")
}

func TestPageFetcher_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewPageFetcher()
	assert.Empty(t, f.FetchText(context.Background(), srv.URL))
}

func TestPageFetcher_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	f := NewPageFetcher()
	assert.Empty(t, f.FetchText(context.Background(), srv.URL))
}

func TestPageFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("late")) //nolint:errcheck
	}))
	defer srv.Close()

	f := NewPageFetcher(WithTimeout(50 * time.Millisecond))
	assert.Empty(t, f.FetchText(context.Background(), srv.URL))
}

func TestStripHTML(t *testing.T) {
	html := `<html><body>
		<nav><a href="/">Home</a></nav>
		<style>body { color: red; }</style>
		<h1>Contact</h1>
		<p>Reach   us&nbsp;anytime</p>
		<footer>Copyright</footer>
	</body></html>`

	text := StripHTML(html)

	assert.Contains(t, text, "Contact")
	assert.Contains(t, text, "Reach us anytime")
	assert.NotContains(t, text, "Home")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "Copyright")
}

// fakeFetcher counts calls and returns a fixed body.
type fakeFetcher struct {
	calls int
	text  string
}

func (f *fakeFetcher) FetchText(_ context.Context, _ string) string {
	f.calls++
	return f.text
}

// memCache is an in-memory PageCache.
type memCache struct {
	pages map[string]string
}

func (m *memCache) GetCachedPage(_ context.Context, url string) (string, bool, error) {
	text, ok := m.pages[url]
	return text, ok, nil
}

func (m *memCache) SetCachedPage(_ context.Context, url, text string, _ time.Duration) error {
	m.pages[url] = text
	return nil
}

func TestCachedFetcher_SecondHitServedFromCache(t *testing.T) {
	inner := &fakeFetcher{text: "page body"}
	c := NewCachedFetcher(inner, &memCache{pages: map[string]string{}}, time.Hour)

	assert.Equal(t, "page body", c.FetchText(context.Background(), "https://www.example.com/"))
	assert.Equal(t, "page body", c.FetchText(context.Background(), "https://www.example.com/"))
	assert.Equal(t, 1, inner.calls)
}

func TestCachedFetcher_EmptyResultNotCached(t *testing.T) {
	inner := &fakeFetcher{text: ""}
	cache := &memCache{pages: map[string]string{}}
	c := NewCachedFetcher(inner, cache, time.Hour)

	assert.Empty(t, c.FetchText(context.Background(), "https://www.example.com/"))
	assert.Empty(t, cache.pages)
	assert.Equal(t, 1, inner.calls)
}
