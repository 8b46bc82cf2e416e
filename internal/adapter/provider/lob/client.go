// Package lob mails letters through Lob's print-and-mail API and reads back
// their USPS tracking events.
package lob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

const defaultBaseURL = "https://api.lob.com"

// Client talks to the Lob letters endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewClient creates a Client from the mail config.
func NewClient(logger *slog.Logger, cfg config.MailConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: config.MailRetryDelay,
		log:        logger.With("adapter", "lob"),
	}
}

// Send submits a letter and returns its Lob id, which serves as tracking id.
func (c *Client) Send(ctx context.Context, req domain.MailRequest) (string, error) {
	payload, err := json.Marshal(newLetterRequest(req))
	if err != nil {
		return "", fmt.Errorf("lob: encode letter: %w", err)
	}

	build := func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/letters", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		if req.IdempotencyKey != "" {
			r.Header.Set("Idempotency-Key", req.IdempotencyKey)
		}
		return r, nil
	}

	resp, err := c.doWithRetry(ctx, build, req.Description)
	if err != nil {
		c.log.ErrorContext(ctx, "lob send failed", slog.String("description", req.Description), slog.String("error", err.Error()))
		return "", fmt.Errorf("lob: send: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("lob: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("lob: send: %s", apiErrorMessage(resp.StatusCode, body))
	}

	var letter letterResponse
	if err := json.Unmarshal(body, &letter); err != nil {
		return "", fmt.Errorf("lob: decode json: %w", err)
	}

	c.log.InfoContext(ctx, "letter submitted",
		slog.String("letter_id", letter.ID),
		slog.String("description", req.Description),
	)
	return letter.ID, nil
}

// PollStatus reads the latest carrier status of a letter. A letter Lob does
// not know yields domain.ErrUnknownTrackingID.
func (c *Client) PollStatus(ctx context.Context, trackingID string) (domain.CarrierStatus, error) {
	build := func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/letters/"+url.PathEscape(trackingID), nil)
	}

	resp, err := c.doWithRetry(ctx, build, trackingID)
	if err != nil {
		return domain.CarrierStatusUnknown, fmt.Errorf("lob: poll: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.CarrierStatusUnknown, fmt.Errorf("lob: poll %s: %w", trackingID, domain.ErrUnknownTrackingID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.CarrierStatusUnknown, fmt.Errorf("lob: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.CarrierStatusUnknown, fmt.Errorf("lob: poll: %s", apiErrorMessage(resp.StatusCode, body))
	}

	var letter letterResponse
	if err := json.Unmarshal(body, &letter); err != nil {
		return domain.CarrierStatusUnknown, fmt.Errorf("lob: decode json: %w", err)
	}

	status := letter.carrierStatus()
	c.log.DebugContext(ctx, "lob status",
		slog.String("letter_id", trackingID),
		slog.String("status", string(status)),
		slog.Int("events", len(letter.TrackingEvents)),
	)
	return status, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. Sends carry an idempotency key, so a retried POST is not mailed twice.
func (c *Client) doWithRetry(ctx context.Context, build func() (*http.Request, error), subject string) (*http.Response, error) {
	req, err := build()
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, errors.Join(err, ctx.Err())
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "lob retry", slog.String("subject", subject), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	req, err = build()
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")
	return c.httpClient.Do(req)
}
