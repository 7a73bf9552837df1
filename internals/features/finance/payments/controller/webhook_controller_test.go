package controller

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"feekhata_backend/internals/configs"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// The ingress gate never touches the store: these paths are exercised
// with no database behind the controller.
func newWebhookApp() *fiber.App {
	app := fiber.New()
	ctl := NewWebhookController(nil)
	app.Post("/api/razorpay/webhook", ctl.HandleRazorpayWebhook)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body []byte, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func withWebhookSecret(t *testing.T, secret string) {
	t.Helper()
	prev := configs.RazorpayWebhookSecret
	configs.RazorpayWebhookSecret = secret
	t.Cleanup(func() { configs.RazorpayWebhookSecret = prev })
}

func TestWebhookIngressMissingSecretIs500(t *testing.T) {
	withWebhookSecret(t, "")
	app := newWebhookApp()

	body := []byte(`{"event":"payment_link.paid"}`)
	resp := postWebhook(t, app, body, signBody(body, "whsec_test"))
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusInternalServerError)
	}
}

func TestWebhookIngressBadSignatureIs400(t *testing.T) {
	withWebhookSecret(t, "whsec_test")
	app := newWebhookApp()

	body := []byte(`{"event":"payment_link.paid"}`)
	tests := []struct {
		name      string
		signature string
	}{
		{"no signature header", ""},
		{"wrong secret", signBody(body, "whsec_other")},
		{"signature over different body", signBody([]byte(`{"event":"x"}`), "whsec_test")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postWebhook(t, app, body, tt.signature)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
			}
		})
	}
}

func TestWebhookIngressValidSignatureNonSettlementAcks(t *testing.T) {
	withWebhookSecret(t, "whsec_test")
	app := newWebhookApp()

	body := []byte(`{"event":"payment.captured","payload":{}}`)
	resp := postWebhook(t, app, body, signBody(body, "whsec_test"))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestWebhookIngressValidSignatureBadJSONIs400(t *testing.T) {
	withWebhookSecret(t, "whsec_test")
	app := newWebhookApp()

	body := []byte(`{not json`)
	resp := postWebhook(t, app, body, signBody(body, "whsec_test"))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
