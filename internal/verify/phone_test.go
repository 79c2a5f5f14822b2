package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newPhoneServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *PhoneClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewPhoneClient("test-key",
		WithPhoneBaseURL(srv.URL),
		WithPhoneRateLimit(1000),
	)
	return srv, client
}

func TestPhoneClient_AcceptsMobile(t *testing.T) {
	var gotPath, gotKey string
	_, client := newPhoneServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid":true,"disposable":false,"line_type":"mobile"}`)) //nolint:errcheck
	})

	assert.True(t, client.Verify(context.Background(), "18328107822"))
	assert.Equal(t, "/verify/18328107822", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestPhoneClient_AcceptsFixedLineOrMobile(t *testing.T) {
	_, client := newPhoneServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"valid":true,"disposable":false,"line_type":"fixed_line_or_mobile"}`)) //nolint:errcheck
	})

	assert.True(t, client.Verify(context.Background(), "18328107822"))
}

func TestPhoneClient_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid number", `{"valid":false,"disposable":false,"line_type":"mobile"}`},
		{"disposable", `{"valid":true,"disposable":true,"line_type":"mobile"}`},
		{"landline", `{"valid":true,"disposable":false,"line_type":"landline"}`},
		{"voip", `{"valid":true,"disposable":false,"line_type":"voip"}`},
		{"unknown line type", `{"valid":true,"disposable":false,"line_type":"unknown"}`},
		{"empty body", ``},
		{"malformed json", `{"valid":tr`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newPhoneServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body)) //nolint:errcheck
			})
			assert.False(t, client.Verify(context.Background(), "18328107822"))
		})
	}
}

func TestPhoneClient_FailClosedOnServerError(t *testing.T) {
	_, client := newPhoneServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	assert.False(t, client.Verify(context.Background(), "18328107822"))
}

func TestPhoneClient_FailClosedOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections

	client := NewPhoneClient("test-key",
		WithPhoneBaseURL(srv.URL),
		WithPhoneRateLimit(1000),
	)
	assert.False(t, client.Verify(context.Background(), "18328107822"))
}

func TestPhoneClient_EmptyNumber(t *testing.T) {
	called := false
	_, client := newPhoneServer(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})

	assert.False(t, client.Verify(context.Background(), ""))
	assert.False(t, called)
}

func TestAcceptable(t *testing.T) {
	assert.True(t, Acceptable(PhoneLookup{Valid: true, LineType: LineTypeMobile}))
	assert.True(t, Acceptable(PhoneLookup{Valid: true, LineType: LineTypeFixedLineOrMobile}))
	assert.False(t, Acceptable(PhoneLookup{Valid: true, Disposable: true, LineType: LineTypeMobile}))
	assert.False(t, Acceptable(PhoneLookup{Valid: false, LineType: LineTypeMobile}))
	assert.False(t, Acceptable(PhoneLookup{Valid: true, LineType: "landline"}))
	assert.False(t, Acceptable(PhoneLookup{}))
}

func TestOfflinePhoneValidator(t *testing.T) {
	v := OfflinePhoneValidator{}
	assert.True(t, v.Verify(context.Background(), "8328107822"))
	assert.True(t, v.Verify(context.Background(), "18328107822"))
	assert.False(t, v.Verify(context.Background(), "8107822"))
	assert.False(t, v.Verify(context.Background(), ""))
}
