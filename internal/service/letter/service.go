// Package letter produces dispute and follow-up letter text. An AI writer is
// tried first when configured; any failure, timeout or empty answer falls
// back to fixed FCRA boilerplate so a letter is always available.
package letter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
)

// Source tells where a letter body came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceTemplate Source = "template"
)

// Letter is a rendered letter body.
type Letter struct {
	Body   string
	Source Source
}

type aiWriter interface {
	Write(ctx context.Context, system, prompt string) (string, error)
}

// Service renders letters.
type Service struct {
	writer  aiWriter
	timeout time.Duration
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a letter service. A nil writer means template-only.
func NewService(log *slog.Logger, writer aiWriter, timeout time.Duration) *Service {
	return &Service{
		writer:  writer,
		timeout: timeout,
		log:     log.With("service", "letter"),
		now:     time.Now,
	}
}

// Generate writes the initial dispute letter for facts.
func (s *Service) Generate(ctx context.Context, facts domain.DisputeFacts) Letter {
	if body, ok := s.tryAI(ctx, disputeSystemPrompt, buildDisputePrompt(facts), facts); ok {
		return Letter{Body: body, Source: SourceAI}
	}
	return Letter{Body: s.renderDispute(facts), Source: SourceTemplate}
}

// GenerateFollowUp writes the follow-up letter described by dir.
func (s *Service) GenerateFollowUp(ctx context.Context, facts domain.DisputeFacts, dir escalation.Directive, daysSince int) Letter {
	if body, ok := s.tryAI(ctx, followUpSystemPrompt, buildFollowUpPrompt(facts, dir, daysSince), facts); ok {
		return Letter{Body: body, Source: SourceAI}
	}
	return Letter{Body: s.renderFollowUp(facts, dir, daysSince), Source: SourceTemplate}
}

func (s *Service) tryAI(ctx context.Context, system, prompt string, facts domain.DisputeFacts) (string, bool) {
	if s.writer == nil {
		return "", false
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	body, err := s.writer.Write(callCtx, system, prompt)
	if err != nil {
		s.log.WarnContext(ctx, "ai letter failed, using template",
			slog.String("bureau", facts.Bureau.String()),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	body = strings.TrimSpace(body)
	if body == "" {
		s.log.WarnContext(ctx, "ai letter empty, using template",
			slog.String("bureau", facts.Bureau.String()),
		)
		return "", false
	}
	return body, true
}
