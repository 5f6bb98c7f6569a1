package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/subcart/backend/internal/config"
	"github.com/subcart/backend/internal/metrics"
	"github.com/subcart/backend/internal/models"
)

type stubSubscriber struct{}

func (s *stubSubscriber) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscriptionResult, error) {
	return &models.SubscriptionResult{Success: true, SubscriptionID: "sub_1", AccountID: "acct_1", State: "active"}, nil
}

func newTestServer() *Server {
	cfg := config.Config{ServerAddress: ":0", RecurlyPublicKey: "test-public-key"}
	return New(cfg, &stubSubscriber{}, metrics.New())
}

func TestHealthRoute(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestSubscribeRoute(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/subscribe",
		strings.NewReader(`{"token":"tok_1","planCode":"premium_monthly","email":"a@example.com"}`))
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "sub_1") {
		t.Fatalf("expected subscription ID in response, got %s", rr.Body.String())
	}
}

func TestPaymentPageRoute(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/payment.html?amount=999&planCode=premium_monthly&planName=Premium", nil)
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "test-public-key") {
		t.Fatal("expected publishable key rendered into the payment page")
	}
}

func TestMetricsRoute(t *testing.T) {
	server := newTestServer()

	// Generate some traffic first so counters exist.
	health := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	server.Handler().ServeHTTP(httptest.NewRecorder(), health)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "subcart_http_requests_total") {
		t.Fatal("expected request counter in metrics exposition")
	}
}

func TestCORSHeaders(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/subscribe", nil)
	req.Header.Set("Origin", "http://10.0.2.2:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()

	server.Handler().ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
}
