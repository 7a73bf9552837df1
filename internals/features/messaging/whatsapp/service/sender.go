package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"feekhata_backend/internals/configs"
	"feekhata_backend/internals/queue"
)

// Message is the payload handed to the WhatsApp shim. Delivery
// guarantees beyond the shim's 2xx are its own business.
type Message struct {
	InstituteName string  `json:"institute_name"`
	StudentName   string  `json:"student_name"`
	ParentPhone   string  `json:"parent_phone"`
	DueAmount     float64 `json:"due_amount,omitempty"`
	PaymentLink   string  `json:"payment_link,omitempty"`
	Body          string  `json:"message,omitempty"`
	MessageType   string  `json:"message_type,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

/* ======================= HTTP SENDER ======================= */

type HTTPSender struct {
	ShimURL string
	Client  *http.Client
}

func NewHTTPSender() *HTTPSender {
	shimURL := configs.WhatsAppShimURL
	if shimURL == "" {
		shimURL = configs.AppURL + "/api/whatsapp/mock"
	}
	return &HTTPSender{
		ShimURL: shimURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal whatsapp message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ShimURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build shim request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post to shim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("shim returned status %d", resp.StatusCode)
	}
	return nil
}

/* ======================= QUEUE SENDER ======================= */

// QueueSender publishes sends to AMQP; a worker drains them through the
// HTTP sender. Keeps big reminder runs off the request path.
type QueueSender struct {
	Queue *queue.Client
}

func NewQueueSender(q *queue.Client) *QueueSender {
	return &QueueSender{Queue: q}
}

func (s *QueueSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal whatsapp message: %w", err)
	}
	return s.Queue.PublishJSON(ctx, payload)
}

// StartQueueWorker consumes queued messages and delivers them over HTTP.
func StartQueueWorker(ctx context.Context, q *queue.Client, delivery Sender) {
	go func() {
		err := q.Consume(ctx, func(body []byte) error {
			var msg Message
			if err := json.Unmarshal(body, &msg); err != nil {
				// poison message, drop it
				log.Printf("[WARN] dropping unparseable whatsapp job: %v", err)
				return nil
			}
			return delivery.Send(ctx, msg)
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("[ERROR] whatsapp queue worker stopped: %v", err)
		}
	}()
}

// NewSender picks the queue-backed sender when AMQP is configured.
func NewSender(q *queue.Client) Sender {
	if q != nil {
		return NewQueueSender(q)
	}
	return NewHTTPSender()
}
