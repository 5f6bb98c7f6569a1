// Package checkout models the cart -> payment -> success flow as an explicit
// state machine. Screens are stack entries like a navigation stack: payment is
// pushed on Pay Now, replaced by success on a successful payment, and popped
// on cancellation. Bridge messages from the embedded payment page drive the
// payment-stage transitions.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/subcart/backend/internal/models"
)

// Stage identifies a screen in the checkout flow.
type Stage string

const (
	StageCart    Stage = "cart"
	StagePayment Stage = "payment"
	StageSuccess Stage = "success"
)

// ErrNoSelection is returned by PayNow when no plan is selected.
var ErrNoSelection = errors.New("checkout: no plan selected")

// entry is one element of the navigation stack together with the payload the
// destination stage requires.
type entry struct {
	stage          Stage
	checkout       models.CheckoutRequest // payment stage
	subscriptionID string                 // success stage
}

// Flow holds the state of one checkout session. It is not safe for
// concurrent use; all transitions happen on the caller's event loop.
type Flow struct {
	plans    []models.Plan
	selected *models.Plan
	stack    []entry
	alert    string
	log      *logrus.Entry
}

// New creates a flow over the given plans, positioned on the cart with the
// popular plan (or the first one) pre-selected.
func New(plans []models.Plan) *Flow {
	f := &Flow{
		plans: plans,
		log:   logrus.WithField("component", "checkout"),
	}
	f.reset()
	return f
}

func (f *Flow) reset() {
	f.stack = []entry{{stage: StageCart}}
	f.alert = ""
	f.selected = nil
	for i := range f.plans {
		if f.plans[i].Popular {
			f.selected = &f.plans[i]
			break
		}
	}
	if f.selected == nil && len(f.plans) > 0 {
		f.selected = &f.plans[0]
	}
}

// Stage returns the stage currently on top of the navigation stack.
func (f *Flow) Stage() Stage {
	return f.stack[len(f.stack)-1].stage
}

// Stack returns the stages on the navigation stack, bottom first.
func (f *Flow) Stack() []Stage {
	out := make([]Stage, len(f.stack))
	for i, e := range f.stack {
		out[i] = e.stage
	}
	return out
}

// Selected returns the currently selected plan, or nil.
func (f *Flow) Selected() *models.Plan {
	return f.selected
}

// Select replaces the current selection with the plan identified by id.
func (f *Flow) Select(id string) error {
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.selected = &f.plans[i]
			return nil
		}
	}
	return fmt.Errorf("checkout: unknown plan %q", id)
}

// PayNow builds a CheckoutRequest from the current selection and pushes the
// payment stage. It fails with ErrNoSelection when nothing is selected and is
// a no-op error outside the cart stage.
func (f *Flow) PayNow() (models.CheckoutRequest, error) {
	if f.Stage() != StageCart {
		return models.CheckoutRequest{}, fmt.Errorf("checkout: pay now invalid on stage %q", f.Stage())
	}
	if f.selected == nil {
		return models.CheckoutRequest{}, ErrNoSelection
	}
	req := models.CheckoutRequest{
		Amount:   f.selected.Price,
		PlanCode: f.selected.Code,
		PlanName: f.selected.Name,
	}
	f.alert = ""
	f.stack = append(f.stack, entry{stage: StagePayment, checkout: req})
	return req, nil
}

// PaymentURL builds the embedded payment page URL for the active payment
// stage against the given backend origin.
func (f *Flow) PaymentURL(origin string) (string, error) {
	top := f.stack[len(f.stack)-1]
	if top.stage != StagePayment {
		return "", fmt.Errorf("checkout: payment URL invalid on stage %q", top.stage)
	}
	q := url.Values{}
	q.Set("amount", strconv.Itoa(top.checkout.Amount))
	q.Set("planCode", top.checkout.PlanCode)
	q.Set("planName", top.checkout.PlanName)
	return origin + "/payment.html?" + q.Encode(), nil
}

// HandleMessage applies one raw bridge message to the flow. Malformed
// payloads, unknown types, and messages arriving outside the payment stage
// are logged and ignored; nothing here panics.
func (f *Flow) HandleMessage(raw []byte) {
	msg, err := ParseBridgeMessage(raw)
	if err != nil {
		f.log.WithError(err).Warn("ignoring bridge message")
		return
	}
	if f.Stage() != StagePayment {
		f.log.WithField("type", msg.Type).Warn("bridge message outside payment stage")
		return
	}

	switch msg.Type {
	case MessagePaymentSuccess:
		if msg.SubscriptionID == "" {
			f.log.Warn("ignoring PAYMENT_SUCCESS without subscriptionId")
			return
		}
		// Replace the payment entry so back-navigation cannot reach it.
		f.stack[len(f.stack)-1] = entry{stage: StageSuccess, subscriptionID: msg.SubscriptionID}
		f.alert = ""
	case MessagePaymentError:
		alert := msg.Message
		if alert == "" {
			alert = defaultErrorAlert
		}
		f.alert = alert
	case MessagePaymentCancelled:
		f.stack = f.stack[:len(f.stack)-1]
		f.alert = ""
	}
}

// Alert returns the pending payment-failure alert, empty when there is none.
// It is cleared by any subsequent transition.
func (f *Flow) Alert() string {
	return f.alert
}

// SubscriptionID returns the confirmed subscription identifier while on the
// success stage, empty otherwise.
func (f *Flow) SubscriptionID() string {
	top := f.stack[len(f.stack)-1]
	if top.stage != StageSuccess {
		return ""
	}
	return top.subscriptionID
}

// GoHome resets the flow to its initial cart state, discarding all checkout
// history including the selection.
func (f *Flow) GoHome() {
	f.reset()
}
