package models

// CheckoutRequest is the payload handed to the payment stage when the user
// invokes Pay Now. It is built from the selected plan at that instant and is
// immutable once created.
type CheckoutRequest struct {
	Amount   int    `json:"amount"`
	PlanCode string `json:"planCode"`
	PlanName string `json:"planName"`
}

// SubscribeRequest is the body of POST /api/subscribe. Token is the opaque
// billing token produced by the hosted payment form; everything except Token,
// PlanCode and Email is optional.
type SubscribeRequest struct {
	Token      string `json:"token"`
	PlanCode   string `json:"planCode"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Address1   string `json:"address1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// SubscriptionResult is the normalized response for POST /api/subscribe.
// Error and Details are only set on failure.
type SubscriptionResult struct {
	Success        bool   `json:"success"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
	AccountID      string `json:"accountId,omitempty"`
	State          string `json:"state,omitempty"`
	Error          string `json:"error,omitempty"`
	Details        any    `json:"details,omitempty"`
}
