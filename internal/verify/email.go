package verify

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// EmailValidator checks a candidate address and returns its normalized
// (lower-cased) form. Rejects mean "discard the candidate", never a fatal
// error.
type EmailValidator interface {
	Validate(ctx context.Context, address string) (string, bool)
}

// mxResolver is the DNS surface the checker needs; *net.Resolver satisfies it.
type mxResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// EmailChecker validates addresses syntactically and confirms the domain can
// receive mail via an MX lookup.
type EmailChecker struct {
	validate *validator.Validate
	resolver mxResolver
	timeout  time.Duration
}

// EmailOption configures the checker.
type EmailOption func(*EmailChecker)

// WithResolver overrides the DNS resolver (tests use a stub).
func WithResolver(r mxResolver) EmailOption {
	return func(c *EmailChecker) {
		c.resolver = r
	}
}

// WithLookupTimeout bounds each MX lookup.
func WithLookupTimeout(d time.Duration) EmailOption {
	return func(c *EmailChecker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewEmailChecker creates an EmailChecker with the system resolver.
func NewEmailChecker(opts ...EmailOption) *EmailChecker {
	c := &EmailChecker{
		validate: validator.New(),
		resolver: net.DefaultResolver,
		timeout:  5 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Validate runs the syntactic check then the deliverability check. The
// normalized form is the lower-cased full address.
func (c *EmailChecker) Validate(ctx context.Context, address string) (string, bool) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", false
	}
	if err := c.validate.Var(address, "email"); err != nil {
		return "", false
	}

	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return "", false
	}
	domain := address[at+1:]

	lookupCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	records, err := c.resolver.LookupMX(lookupCtx, domain)
	if err != nil || len(records) == 0 {
		return "", false
	}

	return strings.ToLower(address), true
}

var offlineValidate = validator.New()

// OfflineEmailValidator applies the syntactic check only, skipping DNS. Used
// by --offline mode and tests.
type OfflineEmailValidator struct{}

// Validate lower-cases syntactically valid addresses.
func (OfflineEmailValidator) Validate(_ context.Context, address string) (string, bool) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", false
	}
	if err := offlineValidate.Var(address, "email"); err != nil {
		return "", false
	}
	return strings.ToLower(address), true
}
