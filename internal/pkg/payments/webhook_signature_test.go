package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.completed"}`)
	secret := "whsec_test"

	if !VerifyWebhookSignature(payload, sign(payload, secret), secret) {
		t.Fatal("valid signature rejected")
	}
	// Uppercase hex is accepted.
	upper := sign(payload, secret)
	if !VerifyWebhookSignature(payload, "  "+upper+"  ", secret) {
		t.Fatal("whitespace-padded signature rejected")
	}
}

func TestVerifyWebhookSignatureRejects(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)

	tests := []struct {
		name      string
		signature string
		secret    string
	}{
		{name: "empty signature", signature: "", secret: "whsec_test"},
		{name: "empty secret", signature: sign(payload, "whsec_test"), secret: ""},
		{name: "not hex", signature: "zz-not-hex", secret: "whsec_test"},
		{name: "wrong secret", signature: sign(payload, "other"), secret: "whsec_test"},
		{name: "tampered payload", signature: sign([]byte(`{"id":"evt_2"}`), "whsec_test"), secret: "whsec_test"},
	}

	for _, tt := range tests {
		if VerifyWebhookSignature(payload, tt.signature, tt.secret) {
			t.Fatalf("%s: signature accepted", tt.name)
		}
	}
}
