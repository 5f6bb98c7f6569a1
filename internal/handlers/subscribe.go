package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/subcart/backend/internal/metrics"
	"github.com/subcart/backend/internal/models"
	"github.com/subcart/backend/internal/recurly"
)

// Subscriber defines the behaviour required from the relay service.
type Subscriber interface {
	Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscriptionResult, error)
}

// errorResponse mirrors the relay's normalized failure payload. Details is
// always present, null when the provider attached no validation params.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details"`
}

// Subscribe handles POST /api/subscribe. Every failure from the billing
// provider is caught here and turned into a structured 400; nothing is
// allowed to crash the process or leak a stack trace.
func Subscribe(svc Subscriber, m *metrics.Metrics) http.HandlerFunc {
	log := logrus.WithField("component", "handlers")
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SubscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeSubscribeError(w, "invalid JSON payload", nil)
			return
		}

		if req.Token == "" || req.PlanCode == "" {
			writeSubscribeError(w, "token and planCode are required", nil)
			return
		}

		result, err := svc.Subscribe(r.Context(), req)
		if err != nil {
			log.WithError(err).WithField("plan_code", req.PlanCode).Error("subscription failed")
			m.SubscriptionsTotal.WithLabelValues("failure").Inc()

			var apiErr *recurly.APIError
			if errors.As(err, &apiErr) {
				var details any
				if len(apiErr.Params) > 0 {
					details = apiErr.Params
				}
				writeSubscribeError(w, apiErr.Message, details)
				return
			}
			writeSubscribeError(w, "Failed to create subscription", nil)
			return
		}

		m.SubscriptionsTotal.WithLabelValues("success").Inc()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func writeSubscribeError(w http.ResponseWriter, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}
