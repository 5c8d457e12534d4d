// Package notifier implements the outbound Slack webhook channel. Sends
// are fire-and-forget: the request path enqueues and moves on, delivery
// failures are logged and never retried, and a full queue drops the message
// rather than block a handler.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/leave-management/internal"
)

type Config struct {
	WebhookURL  string
	QueueSize   int
	SendTimeout time.Duration
}

type payload struct {
	Text string `json:"text"`
}

// Webhook posts JSON {"text": ...} messages to a Slack incoming webhook
// from a background worker.
type Webhook struct {
	webhookURL  string
	sendTimeout time.Duration
	logger      *slog.Logger
	client      *http.Client

	queue  chan string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config, logger *slog.Logger) *Webhook {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	sendTimeout := cfg.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Webhook{
		webhookURL:  cfg.WebhookURL,
		sendTimeout: sendTimeout,
		logger:      logger,
		client:      &http.Client{Timeout: sendTimeout},
		queue:       make(chan string, queueSize),
		ctx:         ctx,
		cancel:      cancel,
	}

	w.wg.Add(1)
	go w.worker()

	return w
}

// Notify enqueues a message for delivery. Never blocks: when the queue is
// full the message is dropped with a local log entry.
func (w *Webhook) Notify(message string) {
	if message == "" {
		return
	}

	select {
	case w.queue <- message:
	default:
		w.logger.Warn("notifier queue full, dropping message", "queue_capacity", cap(w.queue))
	}
}

// Shutdown stops accepting work and drains what is already queued.
func (w *Webhook) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

func (w *Webhook) worker() {
	defer w.wg.Done()

	for {
		select {
		case message := <-w.queue:
			w.send(message)
		case <-w.ctx.Done():
			// drain whatever was enqueued before shutdown
			for {
				select {
				case message := <-w.queue:
					w.send(message)
				default:
					return
				}
			}
		}
	}
}

func (w *Webhook) send(message string) {
	if w.webhookURL == "" {
		// log-only mode when no webhook is configured
		w.logger.Info("notification", "text", message)
		return
	}

	body, err := json.Marshal(payload{Text: message})
	if err != nil {
		w.logger.Error("failed to marshal notification", "error", err)
		return
	}

	ctx, cancel := internal.WithTimeout(context.Background(), w.sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		w.logger.Error("failed to build webhook request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.Error("webhook send failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		w.logger.Warn("webhook returned non-OK status", "status_code", resp.StatusCode)
	}
}
