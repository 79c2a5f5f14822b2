package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/121.0.0.0 Safari/537.36"

// maxPageBytes bounds how much of a listing site we read per fetch.
const maxPageBytes = 512 * 1024

// Fetcher retrieves the text content of listing websites. Implementations
// never return an error: any failure yields empty text and the record
// proceeds on its CSV-supplied phone alone.
type Fetcher interface {
	FetchText(ctx context.Context, url string) string
}

// PageFetcher fetches exactly one page per site over plain HTTP and strips
// the body to plaintext. No link-following, no robots handling.
type PageFetcher struct {
	client    *http.Client
	userAgent string
}

// PageOption configures a PageFetcher.
type PageOption func(*PageFetcher)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) PageOption {
	return func(f *PageFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the identifying request header.
func WithUserAgent(ua string) PageOption {
	return func(f *PageFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewPageFetcher creates a PageFetcher with a 20s timeout and a browser-like
// User-Agent (many listing sites reject obvious bot agents).
func NewPageFetcher(opts ...PageOption) *PageFetcher {
	f := &PageFetcher{
		client: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// FetchText fetches the URL and returns its plaintext content. Timeouts, DNS
// failures, and non-2xx statuses all yield empty text; the cause is logged
// and the pipeline continues.
func (f *PageFetcher) FetchText(ctx context.Context, targetURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		zap.L().Debug("page fetch failed", zap.String("url", targetURL), zap.Error(err))
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		zap.L().Debug("page fetch non-2xx", zap.String("url", targetURL), zap.Int("status", resp.StatusCode))
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		zap.L().Debug("page read failed", zap.String("url", targetURL), zap.Error(err))
		return ""
	}

	return StripHTML(string(body))
}

// StripHTML removes script/style/nav/footer blocks, strips tags, decodes
// common entities, and collapses whitespace, leaving plaintext for the
// contact extractor.
func StripHTML(html string) string {
	for _, tag := range []string{"script", "style", "nav", "footer"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}

	tagRe := regexp.MustCompile(`<[^>]+>`)
	html = tagRe.ReplaceAllString(html, " ")

	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	html = r.Replace(html)

	spaceRe := regexp.MustCompile(`[ \t]+`)
	html = spaceRe.ReplaceAllString(html, " ")

	nlRe := regexp.MustCompile(`\n{3,}`)
	html = nlRe.ReplaceAllString(html, "\n\n")

	return strings.TrimSpace(html)
}
