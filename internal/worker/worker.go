package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"citaverde/internal/store"

	"github.com/google/uuid"
)

// Store is the slice of persistence the notifier needs.
type Store interface {
	ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error)
	GetLastOffset(ctx context.Context) (time.Time, error)
	UpdateOffset(ctx context.Context, value time.Time) error
	InsertNotification(ctx context.Context, notification store.Notification) error
	MarkNotificationSent(ctx context.Context, notificationID string) error
	MarkNotificationFailed(ctx context.Context, notificationID, lastError string) error
	InsertDLQ(ctx context.Context, notificationID, reason string) error
}

type Worker struct {
	store       Store
	batchSize   int
	maxAttempts int
	providers   map[string]Provider
}

type payloadData map[string]interface{}

type Config struct {
	BatchSize     int
	MaxAttempts   int
	EmailProvider string
	PushProvider  string
}

func New(st Store, cfg Config) *Worker {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 50
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Worker{
		store:       st,
		batchSize:   batch,
		maxAttempts: maxAttempts,
		providers: map[string]Provider{
			"email": newProvider(cfg.EmailProvider, "email"),
			"push":  newProvider(cfg.PushProvider, "push"),
		},
	}
}

// Run drains one batch of outbox events and advances the offset past every
// event it saw, delivered or not.
func (w *Worker) Run(ctx context.Context) error {
	last, err := w.store.GetLastOffset(ctx)
	if err != nil {
		return err
	}

	events, err := w.store.ListOutboxEvents(ctx, last, w.batchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			log.Printf("notif process error: %v", err)
		}
		last = event.CreatedAt
	}

	if !last.IsZero() {
		if err := w.store.UpdateOffset(ctx, last); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) processEvent(ctx context.Context, event store.OutboxEvent) error {
	payload := payloadData{}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	template := templateForEvent(event.Type)
	if template == "" {
		return nil
	}
	message := renderTemplate(template, payload)

	for _, target := range pickChannels(payload) {
		notification := store.Notification{
			NotificationID: uuid.NewString(),
			Channel:        target.name,
			Recipient:      target.recipient,
			Status:         "pending",
			Attempts:       1,
		}
		if err := w.store.InsertNotification(ctx, notification); err != nil {
			return err
		}

		provider, ok := w.providers[target.name]
		if !ok {
			provider = noopProvider{}
		}
		msg := Message{Channel: target.name, Recipient: target.recipient, Body: message}
		if providerErr := provider.Deliver(ctx, msg); providerErr != nil {
			if err := w.store.MarkNotificationFailed(ctx, notification.NotificationID, providerErr.Error()); err != nil {
				return err
			}
			if notification.Attempts >= w.maxAttempts {
				if err := w.store.InsertDLQ(ctx, notification.NotificationID, "max attempts reached"); err != nil {
					return err
				}
			}
			continue
		}
		if err := w.store.MarkNotificationSent(ctx, notification.NotificationID); err != nil {
			return err
		}
	}
	return nil
}

func templateForEvent(eventType string) string {
	switch eventType {
	case "turno.created":
		return "Tu turno {number} fue creado en {queue_name}."
	case "cita.created":
		return "Tu cita en {sede_name} para {service_name} el {date} a las {time} fue registrada."
	case "cita.checked_in":
		return "Check-in confirmado para tu cita."
	case "cita.cancelada":
		return "Tu cita del {date} a las {time} fue cancelada."
	default:
		return ""
	}
}

func renderTemplate(template string, payload payloadData) string {
	result := template
	for _, key := range []string{"number", "queue_name", "sede_name", "service_name", "date", "time"} {
		placeholder := "{" + key + "}"
		if !strings.Contains(result, placeholder) {
			continue
		}
		result = strings.ReplaceAll(result, placeholder, str(payload, key))
	}
	return result
}

func str(payload payloadData, key string) string {
	switch value := payload[key].(type) {
	case string:
		return value
	case float64:
		return fmt.Sprintf("%.0f", value)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

type channelTarget struct {
	name      string
	recipient string
}

// An email address travels in the event payload when the caller supplied
// one. Without it delivery falls back to an in-app push keyed by user id.
func pickChannels(payload payloadData) []channelTarget {
	if email, ok := payload["email"].(string); ok && email != "" {
		return []channelTarget{{name: "email", recipient: email}}
	}
	if userID, ok := payload["user_id"].(string); ok && userID != "" {
		return []channelTarget{{name: "push", recipient: userID}}
	}
	return nil
}

func Start(ctx context.Context, interval time.Duration, w *Worker) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Run(ctx); err != nil {
				log.Printf("notif worker error: %v", err)
			}
		}
	}
}
