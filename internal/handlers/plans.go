package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/subcart/backend/internal/catalog"
	"github.com/subcart/backend/internal/models"
)

type plansResponse struct {
	Plans []models.Plan `json:"plans"`
}

// Plans returns the static plan catalog so the app and the payment page
// share one source of truth for pricing.
func Plans() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(plansResponse{Plans: catalog.Plans()})
	}
}
