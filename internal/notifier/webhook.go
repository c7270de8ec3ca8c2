package notifier

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

const webhookTimeout = 10 * time.Second

// Payload is the JSON body posted to the webhook
type Payload struct {
	EventID   string         `json:"eventId"`
	Observer  string         `json:"observer"`
	CheckedAt time.Time      `json:"checkedAt"`
	SourceURL string         `json:"sourceUrl"`
	Message   string         `json:"message"`
	Previous  *PayloadRecord `json:"previous"`
	Current   *PayloadRecord `json:"current"`
}

// PayloadRecord describes one side of the change
type PayloadRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	DistanceMiles float64 `json:"distanceMiles"`
	DetailsURL    string  `json:"detailsUrl"`
}

// NewPayload builds the webhook body for a change
func NewPayload(evt *arcade.ChangeEvent) *Payload {
	p := &Payload{
		EventID:   evt.ID,
		Observer:  evt.Observer,
		CheckedAt: evt.CheckedAt,
		SourceURL: evt.SourceURL,
		Message:   FormatSummary(evt),
		Current:   payloadRecord(evt.Current, evt.CurrentDistanceMiles),
	}
	if evt.Previous != nil {
		p.Previous = payloadRecord(evt.Previous, evt.PreviousDistanceMiles)
	}
	return p
}

func payloadRecord(rec *arcade.Record, miles float64) *PayloadRecord {
	return &PayloadRecord{
		ID:            rec.ID,
		Name:          rec.Name,
		Address:       rec.Address,
		DistanceMiles: miles,
		DetailsURL:    rec.DetailsURL,
	}
}

// WebhookNotifier posts change events as JSON
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier creates a notifier posting to url. Deliveries are not retried.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		client: resty.New().
			SetTimeout(webhookTimeout).
			SetRetryCount(0),
		url: url,
	}
}

// Name returns "webhook"
func (n *WebhookNotifier) Name() string { return "webhook" }

// Notify posts the change; any non-2xx answer is a delivery failure
func (n *WebhookNotifier) Notify(ctx context.Context, evt *arcade.ChangeEvent) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(NewPayload(evt)).
		Post(n.url)
	if err != nil {
		return deliveryError("posting webhook: %v", err)
	}

	if !resp.IsSuccess() {
		return deliveryError("webhook error (status %d): %s", resp.StatusCode(), resp.String())
	}

	return nil
}
