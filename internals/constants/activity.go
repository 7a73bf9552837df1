package constants

// Activity log type tags (append-only audit trail)
const (
	ActivityReminderSent    = "reminder_sent"
	ActivityPaymentReceived = "payment_received"
	ActivityManualPayment   = "manual_payment"
	ActivityBroadcastSent   = "broadcast_sent"
)
