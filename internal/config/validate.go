package config

import (
	"fmt"
	"net/url"
	"time"
)

const maxReconcileWorkers = 64

// MailRetryDelay is the pause before the mail client's single retry.
const MailRetryDelay = 500 * time.Millisecond

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.JWTLeeway < 0 || c.Auth.JWTLeeway > 5*time.Minute {
		return fmt.Errorf("auth.jwt_leeway must be between 0 and 5m (got %s)", c.Auth.JWTLeeway)
	}

	if err := c.Lifecycle.validate(); err != nil {
		return fmt.Errorf("lifecycle: %w", err)
	}
	if err := c.Reconcile.validate(); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	if err := c.Letter.validate(); err != nil {
		return fmt.Errorf("letter: %w", err)
	}
	if err := c.Mail.validate(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	if need := c.sendBudget(); c.Reconcile.ItemTimeout <= need {
		return fmt.Errorf("reconcile: item_timeout (%v) must exceed the letter and mail timeouts of one send (%v)",
			c.Reconcile.ItemTimeout, need)
	}

	return nil
}

// sendBudget is the longest one mailing can take: the letter writer, then a
// mail request retried once.
func (c *Config) sendBudget() time.Duration {
	need := 2*c.Mail.Timeout + MailRetryDelay
	if c.Letter.Provider != LetterProviderTemplate {
		need += c.Letter.Timeout
	}
	return need
}

func (l *LifecycleConfig) validate() error {
	if l.FollowUpInterval <= 0 {
		return fmt.Errorf("follow_up_interval must be > 0 (got %v)", l.FollowUpInterval)
	}
	if l.ConflictBackoff < 0 {
		return fmt.Errorf("conflict_backoff must be >= 0 (got %v)", l.ConflictBackoff)
	}
	return nil
}

func (r *ReconcileConfig) validate() error {
	if r.Workers < 1 || r.Workers > maxReconcileWorkers {
		return fmt.Errorf("workers must be in 1..%d (got %d)", maxReconcileWorkers, r.Workers)
	}
	if r.BatchLimit <= 0 {
		return fmt.Errorf("batch_limit must be > 0 (got %d)", r.BatchLimit)
	}
	if r.ItemTimeout <= 0 {
		return fmt.Errorf("item_timeout must be > 0 (got %v)", r.ItemTimeout)
	}
	if r.RunTimeout < r.ItemTimeout {
		return fmt.Errorf("run_timeout (%v) must be >= item_timeout (%v)", r.RunTimeout, r.ItemTimeout)
	}
	return nil
}

func (l *LetterConfig) validate() error {
	switch l.Provider {
	case LetterProviderTemplate:
		return nil
	case LetterProviderAnthropic, LetterProviderOpenAI:
		if l.APIKey == "" {
			return fmt.Errorf("api_key is required for provider %q", l.Provider)
		}
	default:
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	return nil
}

func (m *MailConfig) validate() error {
	if m.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if _, err := url.ParseRequestURI(m.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", m.Timeout)
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	if n.WebhookURL == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(n.WebhookURL); err != nil {
		return fmt.Errorf("webhook_url: %w", err)
	}
	return nil
}
