package verify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultPhoneBaseURL = "https://api.phoneintel.dev/v1"

// Mobile-capable line types accepted by the verification policy.
const (
	LineTypeMobile            = "mobile"
	LineTypeFixedLineOrMobile = "fixed_line_or_mobile"
)

// PhoneValidator decides whether a digits-only phone candidate should be
// kept. Implementations are fail-closed: any outcome that cannot be
// positively confirmed rejects the candidate.
type PhoneValidator interface {
	Verify(ctx context.Context, digits string) bool
}

// PhoneLookup is the verification service's JSON response body.
type PhoneLookup struct {
	Valid      bool   `json:"valid"`
	Disposable bool   `json:"disposable"`
	LineType   string `json:"line_type"`
}

// PhoneOption configures the phone verification client.
type PhoneOption func(*PhoneClient)

// WithPhoneBaseURL overrides the default API base URL.
func WithPhoneBaseURL(url string) PhoneOption {
	return func(c *PhoneClient) {
		c.baseURL = url
	}
}

// WithPhoneHTTPClient overrides the default http.Client.
func WithPhoneHTTPClient(hc *http.Client) PhoneOption {
	return func(c *PhoneClient) {
		c.http = hc
	}
}

// WithPhoneRateLimit sets the client-side request rate in requests/sec.
func WithPhoneRateLimit(rps float64) PhoneOption {
	return func(c *PhoneClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// PhoneClient verifies candidates against the phone intelligence API, one
// synchronous round trip per candidate. No retries: a failed call rejects the
// candidate and the caller moves on to its siblings.
type PhoneClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewPhoneClient creates a phone verification client. The caller is expected
// to have checked that apiKey is non-empty at startup; a missing credential is
// a configuration error, not a per-call failure.
func NewPhoneClient(apiKey string, opts ...PhoneOption) *PhoneClient {
	c := &PhoneClient{
		apiKey:  apiKey,
		baseURL: defaultPhoneBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Verify reports whether the service confirms the number as valid, not
// disposable, and mobile-capable. Transport errors, non-200 statuses, and
// malformed bodies all reject.
func (c *PhoneClient) Verify(ctx context.Context, digits string) bool {
	if digits == "" {
		return false
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verify/"+digits, nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		zap.L().Warn("phone verification call failed",
			zap.String("number", digits),
			zap.Error(err),
		)
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return false
	}

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("phone verification unexpected status",
			zap.String("number", digits),
			zap.Int("status", resp.StatusCode),
		)
		return false
	}

	var lookup PhoneLookup
	if err := json.Unmarshal(body, &lookup); err != nil {
		zap.L().Warn("phone verification malformed response",
			zap.String("number", digits),
			zap.Error(err),
		)
		return false
	}

	return Acceptable(lookup)
}

// Acceptable applies the keep/drop policy to a lookup result: valid, not
// disposable, and a mobile-capable line type. Everything else rejects.
func Acceptable(l PhoneLookup) bool {
	if !l.Valid || l.Disposable {
		return false
	}
	switch l.LineType {
	case LineTypeMobile, LineTypeFixedLineOrMobile:
		return true
	}
	return false
}

// OfflinePhoneValidator accepts any candidate with a plausible US digit count
// without calling the verification service. Used by --offline mode and tests.
type OfflinePhoneValidator struct{}

// Verify accepts candidates of at least ten digits.
func (OfflinePhoneValidator) Verify(_ context.Context, digits string) bool {
	return len(digits) >= 10
}
