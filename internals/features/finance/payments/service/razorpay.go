package service

import (
	"fmt"
	"log"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
	razorpayUtils "github.com/razorpay/razorpay-go/utils"

	"feekhata_backend/internals/configs"
)

var rzpClient *razorpay.Client

// InitRazorpay is called at bootstrap. With no credentials the client
// stays nil and link creation is skipped (reminders still go out).
func InitRazorpay(keyID, keySecret string) {
	if keyID == "" || keySecret == "" {
		log.Println("⚠️ Razorpay not configured, payment links disabled")
		return
	}
	rzpClient = razorpay.NewClient(keyID, keySecret)
	log.Println("✅ Razorpay client ready.")
}

type PaymentLink struct {
	ID       string
	ShortURL string
}

// CreatePaymentLink issues a Razorpay payment link. Amount is in rupees;
// the gateway wants paise.
func CreatePaymentLink(amount float64, description, referenceID string, studentID, instituteID string) (*PaymentLink, error) {
	if rzpClient == nil {
		return nil, nil
	}

	data := map[string]interface{}{
		"amount":          int64(math.Round(amount * 100)),
		"currency":        "INR",
		"description":     description,
		"notify":          map[string]interface{}{"sms": false, "email": false},
		"callback_url":    configs.AppURL + "/payments?success=1",
		"callback_method": "get",
		"reference_id":    referenceID,
		"notes": map[string]interface{}{
			"student_id":   studentID,
			"institute_id": instituteID,
		},
	}

	resp, err := rzpClient.PaymentLink.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create link: %w", err)
	}

	id, _ := resp["id"].(string)
	shortURL, _ := resp["short_url"].(string)
	if id == "" || shortURL == "" {
		return nil, fmt.Errorf("razorpay create link: incomplete response")
	}
	return &PaymentLink{ID: id, ShortURL: shortURL}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex digest the gateway
// computes over the exact raw body.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	return razorpayUtils.VerifyWebhookSignature(string(body), signature, secret)
}
