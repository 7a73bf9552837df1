package dto

// Razorpay webhook envelope. Only the settlement event is acted on;
// everything else is acknowledged untouched.
const EventPaymentLinkPaid = "payment_link.paid"

type WebhookEvent struct {
	Event   string         `json:"event"`
	Payload WebhookPayload `json:"payload"`
}

type WebhookPayload struct {
	PaymentLink struct {
		Entity struct {
			ID string `json:"id"`
		} `json:"entity"`
	} `json:"payment_link"`
	Payment struct {
		Entity struct {
			ID     string `json:"id"`
			Amount int64  `json:"amount"` // paise
			Status string `json:"status"`
		} `json:"entity"`
	} `json:"payment"`
}

func (e WebhookEvent) LinkID() string {
	return e.Payload.PaymentLink.Entity.ID
}

// AmountPaise is the settled amount in minor currency units.
func (e WebhookEvent) AmountPaise() int64 {
	return e.Payload.Payment.Entity.Amount
}
