package verify

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubResolver returns canned MX answers per domain.
type stubResolver struct {
	mx  map[string][]*net.MX
	err error
}

func (s *stubResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.mx[name], nil
}

func TestEmailChecker_ValidAddress(t *testing.T) {
	checker := NewEmailChecker(WithResolver(&stubResolver{
		mx: map[string][]*net.MX{"example.com": {{Host: "mx.example.com", Pref: 10}}},
	}))

	got, ok := checker.Validate(context.Background(), "Info@Example.com")

	assert.True(t, ok)
	assert.Equal(t, "info@example.com", got)
}

func TestEmailChecker_SyntacticRejects(t *testing.T) {
	checker := NewEmailChecker(WithResolver(&stubResolver{
		mx: map[string][]*net.MX{"example.com": {{Host: "mx.example.com", Pref: 10}}},
	}))

	tests := []string{
		"",
		"   ",
		"not-an-email",
		"missing@domain",
		"@example.com",
		"two@@example.com",
	}
	for _, address := range tests {
		t.Run(address, func(t *testing.T) {
			_, ok := checker.Validate(context.Background(), address)
			assert.False(t, ok)
		})
	}
}

func TestEmailChecker_NoMXRecords(t *testing.T) {
	checker := NewEmailChecker(WithResolver(&stubResolver{mx: map[string][]*net.MX{}}))

	_, ok := checker.Validate(context.Background(), "info@example.com")
	assert.False(t, ok)
}

func TestEmailChecker_LookupErrorRejects(t *testing.T) {
	checker := NewEmailChecker(WithResolver(&stubResolver{err: errors.New("dns failure")}))

	_, ok := checker.Validate(context.Background(), "info@example.com")
	assert.False(t, ok)
}

func TestEmailChecker_TrimsWhitespace(t *testing.T) {
	checker := NewEmailChecker(WithResolver(&stubResolver{
		mx: map[string][]*net.MX{"example.com": {{Host: "mx.example.com", Pref: 10}}},
	}))

	got, ok := checker.Validate(context.Background(), "  info@example.com  ")
	assert.True(t, ok)
	assert.Equal(t, "info@example.com", got)
}

func TestOfflineEmailValidator(t *testing.T) {
	v := OfflineEmailValidator{}

	got, ok := v.Validate(context.Background(), "Sales@Example.COM")
	assert.True(t, ok)
	assert.Equal(t, "sales@example.com", got)

	_, ok = v.Validate(context.Background(), "nope")
	assert.False(t, ok)
}
