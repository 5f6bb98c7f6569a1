// Package relay turns a checkout submission (payment token + plan code +
// customer fields) into a billing-provider account and subscription.
package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/subcart/backend/internal/models"
	"github.com/subcart/backend/internal/recurly"
)

// currency is the fixed settlement currency for every subscription.
const currency = "INR"

// Defaults applied when the caller omits customer names.
const (
	defaultFirstName = "Customer"
	defaultLastName  = "User"
)

// BillingClient is the subset of the Recurly client the relay depends on.
type BillingClient interface {
	CreateAccount(ctx context.Context, req recurly.AccountCreate) (*recurly.Account, error)
	CreateSubscription(ctx context.Context, req recurly.SubscriptionCreate) (*recurly.Subscription, error)
}

// Service creates subscriptions against the billing provider. Constructed
// once at startup and shared read-only across requests.
type Service struct {
	billing BillingClient
	log     *logrus.Entry
}

// New creates a relay service on top of a billing client.
func New(billing BillingClient) *Service {
	return &Service{
		billing: billing,
		log:     logrus.WithField("component", "relay"),
	}
}

// Subscribe creates an account with the payment token as billing credential,
// then a subscription on the requested plan. The two calls run sequentially;
// there is no retry and no rollback of the account if the subscription fails.
func (s *Service) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.SubscriptionResult, error) {
	accountCode := newAccountCode()

	s.log.WithFields(logrus.Fields{
		"plan_code":    req.PlanCode,
		"email":        req.Email,
		"account_code": accountCode,
	}).Info("creating subscription")

	accountReq := recurly.AccountCreate{
		Code:      accountCode,
		Email:     req.Email,
		FirstName: firstNonEmpty(req.FirstName, defaultFirstName),
		LastName:  firstNonEmpty(req.LastName, defaultLastName),
		BillingInfo: &recurly.BillingInfoCreate{
			TokenID: req.Token,
		},
	}
	if addr := buildAddress(req); addr != nil {
		accountReq.Address = addr
	}

	account, err := s.billing.CreateAccount(ctx, accountReq)
	if err != nil {
		s.log.WithError(err).Error("account creation failed")
		return nil, err
	}

	sub, err := s.billing.CreateSubscription(ctx, recurly.SubscriptionCreate{
		PlanCode: req.PlanCode,
		Currency: currency,
		Account:  recurly.AccountRef{Code: accountCode},
	})
	if err != nil {
		s.log.WithError(err).Error("subscription creation failed")
		return nil, err
	}

	return &models.SubscriptionResult{
		Success:        true,
		SubscriptionID: sub.ID,
		AccountID:      account.ID,
		State:          sub.State,
	}, nil
}

// newAccountCode generates a per-request account code: current time in
// milliseconds plus a random suffix. A natural-key substitute, not a
// provider-assigned identifier.
func newAccountCode() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), suffix)
}

func buildAddress(req models.SubscribeRequest) *recurly.Address {
	if req.Address1 == "" && req.City == "" && req.State == "" && req.PostalCode == "" && req.Country == "" {
		return nil
	}
	return &recurly.Address{
		Street1:    req.Address1,
		City:       req.City,
		Region:     req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
