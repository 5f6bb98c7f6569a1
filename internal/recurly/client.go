// Package recurly wraps the Recurly v3 REST API directly (no SDK dependency),
// covering only the calls the subscription relay needs.
package recurly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://v3.recurly.com"
	apiVersion     = "application/vnd.recurly.v2021-02-25"

	// requestTimeout bounds every outbound call; the upstream API has no
	// documented worst-case latency.
	requestTimeout = 30 * time.Second
)

// Client performs authenticated calls against the Recurly API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a Recurly API client using the private API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        logrus.WithField("component", "recurly"),
	}
}

// NewClientWithBaseURL creates a client against a non-default API endpoint.
// Used by tests to point at a local stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Address is the optional billing address attached to a new account.
type Address struct {
	Street1    string `json:"street1,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// BillingInfoCreate carries the opaque token produced by the hosted form.
type BillingInfoCreate struct {
	TokenID string `json:"token_id"`
}

// AccountCreate is the body for POST /accounts.
type AccountCreate struct {
	Code        string             `json:"code"`
	Email       string             `json:"email,omitempty"`
	FirstName   string             `json:"first_name,omitempty"`
	LastName    string             `json:"last_name,omitempty"`
	Address     *Address           `json:"address,omitempty"`
	BillingInfo *BillingInfoCreate `json:"billing_info,omitempty"`
}

// Account is the subset of the account resource the relay consumes.
type Account struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Email string `json:"email"`
	State string `json:"state"`
}

// AccountRef references an existing account by code.
type AccountRef struct {
	Code string `json:"code"`
}

// SubscriptionCreate is the body for POST /subscriptions.
type SubscriptionCreate struct {
	PlanCode string     `json:"plan_code"`
	Currency string     `json:"currency"`
	Account  AccountRef `json:"account"`
}

// Subscription is the subset of the subscription resource the relay consumes.
type Subscription struct {
	ID       string `json:"id"`
	UUID     string `json:"uuid"`
	State    string `json:"state"`
	PlanCode string `json:"plan_code"`
	Currency string `json:"currency"`
}

// ValidationParam is one field-level validation failure attached to an API
// error.
type ValidationParam struct {
	Param   string `json:"param"`
	Message string `json:"message"`
}

// APIError is a structured error returned by the Recurly API.
type APIError struct {
	StatusCode int               `json:"-"`
	Type       string            `json:"type"`
	Message    string            `json:"message"`
	Params     []ValidationParam `json:"params,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("recurly: %s (%d): %s", e.Type, e.StatusCode, e.Message)
}

// CreateAccount creates an account with the token as billing credential.
func (c *Client) CreateAccount(ctx context.Context, req AccountCreate) (*Account, error) {
	var account Account
	if err := c.post(ctx, "/accounts", req, &account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	c.log.WithField("account_id", account.ID).Info("account created")
	return &account, nil
}

// CreateSubscription subscribes an existing account to a plan.
func (c *Client) CreateSubscription(ctx context.Context, req SubscriptionCreate) (*Subscription, error) {
	var sub Subscription
	if err := c.post(ctx, "/subscriptions", req, &sub); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	c.log.WithField("subscription_id", sub.ID).Info("subscription created")
	return &sub, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recurly request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read recurly response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse recurly response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var wrapper struct {
		Error APIError `json:"error"`
	}
	apiErr := APIError{StatusCode: status, Type: "unknown", Message: "unknown error"}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Error.Message != "" {
		apiErr = wrapper.Error
		apiErr.StatusCode = status
	}
	return &apiErr
}
