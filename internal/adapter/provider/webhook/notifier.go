// Package webhook posts reminder events as JSON to an automation endpoint
// (an n8n workflow in production).
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Notifier delivers notifications to a single webhook URL.
type Notifier struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewNotifier creates a Notifier. Callers check cfg.NotifyEnabled first.
func NewNotifier(logger *slog.Logger, cfg config.NotifyConfig) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		url:        cfg.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "webhook"),
	}
}

type payload struct {
	Type          string  `json:"type"`
	DisputeID     string  `json:"dispute_id"`
	UserEmail     string  `json:"user_email"`
	UserName      string  `json:"user_name"`
	Bureau        string  `json:"bureau"`
	Creditor      string  `json:"creditor"`
	AccountNumber string  `json:"account_number"`
	Status        string  `json:"status"`
	SentDate      *string `json:"sent_date"`
	DaysWaiting   int     `json:"days_waiting"`
	Tier          string  `json:"tier,omitempty"`
	OccurredAt    string  `json:"occurred_at"`
}

func toPayload(n domain.Notification) payload {
	p := payload{
		Type:          string(n.Type),
		DisputeID:     n.DisputeID.String(),
		UserEmail:     n.UserEmail,
		UserName:      n.UserName,
		Bureau:        n.Bureau.String(),
		Creditor:      n.CreditorName,
		AccountNumber: n.AccountNumber,
		Status:        string(n.Status),
		DaysWaiting:   n.DaysWaiting,
		Tier:          n.Tier,
		OccurredAt:    n.OccurredAt.UTC().Format(time.RFC3339),
	}
	if n.SentDate != nil {
		s := n.SentDate.UTC().Format(time.RFC3339)
		p.SentDate = &s
	}
	return p
}

// Notify posts n. Any non-2xx answer is an error; there is no retry.
func (wh *Notifier) Notify(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(toPayload(n))
	if err != nil {
		return fmt.Errorf("webhook: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wh.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}

	wh.log.DebugContext(ctx, "notification delivered",
		slog.String("type", string(n.Type)),
		slog.String("dispute_id", n.DisputeID.String()),
	)
	return nil
}
