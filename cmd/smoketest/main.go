// Command smoketest drives the checkout flow engine against a running relay:
// it selects a plan, submits a billing token to /api/subscribe, and feeds the
// outcome back into the flow the same way the payment page's bridge messages
// would. Useful for verifying a deployment with a Recurly test token.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/subcart/backend/internal/catalog"
	"github.com/subcart/backend/internal/checkout"
	"github.com/subcart/backend/internal/config"
	"github.com/subcart/backend/internal/models"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	var (
		origin = flag.String("origin", cfg.BackendOrigin, "relay base URL")
		planID = flag.String("plan", catalog.Default().ID, "catalog plan ID to purchase")
		token  = flag.String("token", "", "billing token (from the hosted form or a Recurly test token)")
		email  = flag.String("email", "smoketest@example.com", "customer email")
	)
	flag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "-token is required")
		os.Exit(2)
	}

	flow := checkout.New(catalog.Plans())
	if err := flow.Select(*planID); err != nil {
		logrus.WithError(err).Fatal("plan selection failed")
	}

	req, err := flow.PayNow()
	if err != nil {
		logrus.WithError(err).Fatal("pay now failed")
	}

	paymentURL, _ := flow.PaymentURL(*origin)
	fmt.Printf("plan:        %s (%s), amount %d\n", req.PlanName, req.PlanCode, req.Amount)
	fmt.Printf("payment url: %s\n", paymentURL)

	flow.HandleMessage(subscribe(*origin, models.SubscribeRequest{
		Token:    *token,
		PlanCode: req.PlanCode,
		Email:    *email,
	}))

	switch flow.Stage() {
	case checkout.StageSuccess:
		fmt.Printf("subscription: %s (Active)\n", flow.SubscriptionID())
		flow.GoHome()
	case checkout.StagePayment:
		fmt.Printf("payment failed: %s\n", flow.Alert())
		os.Exit(1)
	}
}

// subscribe posts to the relay and converts the response into the bridge
// message the payment page would emit for the same outcome.
func subscribe(origin string, req models.SubscribeRequest) []byte {
	body, _ := json.Marshal(req)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(origin+"/api/subscribe", "application/json", bytes.NewReader(body))
	if err != nil {
		return bridgeError(fmt.Sprintf("relay unreachable: %v", err))
	}
	defer resp.Body.Close()

	var result models.SubscriptionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return bridgeError(fmt.Sprintf("bad relay response: %v", err))
	}

	if !result.Success {
		return bridgeError(result.Error)
	}

	msg, _ := json.Marshal(checkout.BridgeMessage{
		Type:           checkout.MessagePaymentSuccess,
		SubscriptionID: result.SubscriptionID,
	})
	return msg
}

func bridgeError(message string) []byte {
	msg, _ := json.Marshal(checkout.BridgeMessage{
		Type:    checkout.MessagePaymentError,
		Message: message,
	})
	return msg
}
