package checkout

import "testing"

func TestParseBridgeMessage(t *testing.T) {
	msg, err := ParseBridgeMessage([]byte(`{"type":"PAYMENT_SUCCESS","subscriptionId":"sub_1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != MessagePaymentSuccess || msg.SubscriptionID != "sub_1" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestParseBridgeMessageRejectsUnknownType(t *testing.T) {
	if _, err := ParseBridgeMessage([]byte(`{"type":"SOMETHING_ELSE"}`)); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestParseBridgeMessageRejectsNonJSON(t *testing.T) {
	if _, err := ParseBridgeMessage([]byte("<html>")); err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
}
