package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/subcart/backend/internal/metrics"
	"github.com/subcart/backend/internal/models"
	"github.com/subcart/backend/internal/recurly"
)

type mockSubscriber struct {
	lastReq models.SubscribeRequest
	result  *models.SubscriptionResult
	err     error
}

func (m *mockSubscriber) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscriptionResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func postSubscribe(t *testing.T, svc Subscriber, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	rr := httptest.NewRecorder()
	Subscribe(svc, metrics.New()).ServeHTTP(rr, req)
	return rr
}

func TestSubscribeSuccess(t *testing.T) {
	svc := &mockSubscriber{
		result: &models.SubscriptionResult{
			Success:        true,
			SubscriptionID: "sub_1",
			AccountID:      "acct_1",
			State:          "active",
		},
	}

	rr := postSubscribe(t, svc, `{"token":"tok_1","planCode":"premium_monthly","email":"a@example.com"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	var result models.SubscriptionResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success || result.SubscriptionID != "sub_1" {
		t.Fatalf("unexpected response %+v", result)
	}
	if svc.lastReq.PlanCode != "premium_monthly" {
		t.Fatalf("plan code not forwarded, got %q", svc.lastReq.PlanCode)
	}
}

func TestSubscribeProviderError(t *testing.T) {
	svc := &mockSubscriber{
		err: &recurly.APIError{
			Type:    "validation",
			Message: "Token is invalid",
			Params:  []recurly.ValidationParam{{Param: "token_id", Message: "is invalid"}},
		},
	}

	rr := postSubscribe(t, svc, `{"token":"tok_bad","planCode":"premium_monthly"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}

	var resp struct {
		Success bool            `json:"success"`
		Error   string          `json:"error"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success false")
	}
	if resp.Error != "Token is invalid" {
		t.Fatalf("expected provider message, got %q", resp.Error)
	}
	if !strings.Contains(string(resp.Details), "token_id") {
		t.Fatalf("expected validation params in details, got %s", resp.Details)
	}
}

func TestSubscribeNonProviderError(t *testing.T) {
	svc := &mockSubscriber{err: context.DeadlineExceeded}

	rr := postSubscribe(t, svc, `{"token":"tok_1","planCode":"premium_monthly"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "goroutine") {
		t.Fatal("response must never contain a stack trace")
	}
}

func TestSubscribeInvalidJSON(t *testing.T) {
	rr := postSubscribe(t, &mockSubscriber{}, "{not json")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestSubscribeMissingFields(t *testing.T) {
	svc := &mockSubscriber{}

	rr := postSubscribe(t, svc, `{"email":"a@example.com"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if svc.lastReq.Token != "" {
		t.Fatal("relay must not be called without a token")
	}
}
