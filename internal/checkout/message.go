package checkout

import (
	"encoding/json"
	"fmt"
)

// Bridge message types posted by the embedded payment page.
const (
	MessagePaymentSuccess   = "PAYMENT_SUCCESS"
	MessagePaymentError     = "PAYMENT_ERROR"
	MessagePaymentCancelled = "PAYMENT_CANCELLED"
)

// defaultErrorAlert is shown when a PAYMENT_ERROR carries no message.
const defaultErrorAlert = "Something went wrong"

// BridgeMessage is a single JSON message from the embedded payment page to
// its host. Type selects which of the other fields are meaningful.
type BridgeMessage struct {
	Type           string `json:"type"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
	Message        string `json:"message,omitempty"`
}

// ParseBridgeMessage decodes a raw bridge payload. It rejects payloads that
// are not JSON objects or carry an unknown type; the flow treats both the
// same way, by logging and ignoring them.
func ParseBridgeMessage(raw []byte) (BridgeMessage, error) {
	var msg BridgeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return BridgeMessage{}, fmt.Errorf("parse bridge message: %w", err)
	}
	switch msg.Type {
	case MessagePaymentSuccess, MessagePaymentError, MessagePaymentCancelled:
		return msg, nil
	default:
		return BridgeMessage{}, fmt.Errorf("unknown bridge message type %q", msg.Type)
	}
}
