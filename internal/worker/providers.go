package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Message is one rendered notification ready for delivery.
type Message struct {
	Channel   string
	Recipient string
	Body      string
}

type Provider interface {
	Deliver(ctx context.Context, msg Message) error
}

// newProvider maps a configured provider kind to an implementation. Unknown
// kinds and webhook channels without a URL degrade to the log provider so a
// misconfigured channel never drops events silently.
func newProvider(kind, channel string) Provider {
	switch {
	case kind == "noop":
		return noopProvider{}
	case kind == "fail":
		return failProvider{}
	case kind == "webhook":
		return webhookFromEnv(channel)
	case strings.HasPrefix(kind, "http://"), strings.HasPrefix(kind, "https://"):
		return &webhookProvider{url: kind, client: newWebhookClient()}
	default:
		return logProvider{}
	}
}

func webhookFromEnv(channel string) Provider {
	prefix := "CITAVERDE_" + strings.ToUpper(channel)
	url := os.Getenv(prefix + "_WEBHOOK_URL")
	if url == "" {
		return logProvider{}
	}
	return &webhookProvider{
		url:    url,
		token:  os.Getenv(prefix + "_WEBHOOK_TOKEN"),
		client: newWebhookClient(),
	}
}

func newWebhookClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

type logProvider struct{}

func (logProvider) Deliver(ctx context.Context, msg Message) error {
	log.Printf("notif channel=%s recipient=%s body=%q", msg.Channel, msg.Recipient, msg.Body)
	return nil
}

type noopProvider struct{}

func (noopProvider) Deliver(context.Context, Message) error { return nil }

type failProvider struct{}

func (failProvider) Deliver(context.Context, Message) error {
	return errors.New("delivery rejected")
}

type webhookProvider struct {
	url    string
	token  string
	client *http.Client
}

func (p *webhookProvider) Deliver(ctx context.Context, msg Message) error {
	body, err := json.Marshal(map[string]string{
		"canal":        msg.Channel,
		"destinatario": msg.Recipient,
		"mensaje":      msg.Body,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
