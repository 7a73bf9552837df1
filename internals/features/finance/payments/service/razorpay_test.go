package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test_123"
	body := []byte(`{"event":"payment_link.paid","payload":{}}`)
	good := signBody(body, secret)

	tests := []struct {
		name      string
		body      []byte
		signature string
		secret    string
		want      bool
	}{
		{"valid signature", body, good, secret, true},
		{"wrong secret", body, good, "whsec_other", false},
		{"tampered body", []byte(`{"event":"payment_link.paid","payload":{"x":1}}`), good, secret, false},
		{"empty signature", body, "", secret, false},
		{"garbage signature", body, "deadbeef", secret, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyWebhookSignature(tt.body, tt.signature, tt.secret); got != tt.want {
				t.Errorf("VerifyWebhookSignature() = %v, want %v", got, tt.want)
			}
		})
	}
}
