package catalog

import "github.com/subcart/backend/internal/models"

// plans is the static catalog. Prices are whole rupees per month; Code must
// match a plan configured in Recurly.
var plans = []models.Plan{
	{
		ID:          "1",
		Code:        "basic_monthly",
		Name:        "Basic",
		Price:       499,
		Description: "Perfect for individuals",
		Features:    []string{"5 Projects", "10 GB Storage", "Email Support"},
	},
	{
		ID:          "2",
		Code:        "premium_monthly",
		Name:        "Premium",
		Price:       999,
		Description: "Best for professionals",
		Features:    []string{"Unlimited Projects", "100 GB Storage", "Priority Support", "Analytics"},
		Popular:     true,
	},
	{
		ID:          "3",
		Code:        "enterprise_monthly",
		Name:        "Enterprise",
		Price:       2499,
		Description: "For large teams",
		Features:    []string{"Unlimited Everything", "1 TB Storage", "24/7 Support", "Custom Integrations"},
	},
}

// Plans returns a copy of the catalog so callers cannot mutate it.
func Plans() []models.Plan {
	out := make([]models.Plan, len(plans))
	copy(out, plans)
	return out
}

// Default returns the plan pre-selected when the cart is first shown: the
// plan marked popular, or the first plan if none is.
func Default() models.Plan {
	for _, p := range plans {
		if p.Popular {
			return p
		}
	}
	return plans[0]
}

// ByID looks a plan up by its catalog ID.
func ByID(id string) (models.Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}

// ByCode looks a plan up by its billing-provider plan code.
func ByCode(code string) (models.Plan, bool) {
	for _, p := range plans {
		if p.Code == code {
			return p, true
		}
	}
	return models.Plan{}, false
}
