// Package reconcile runs the batch pass that mails pending disputes, polls
// the carrier for mailed ones and escalates overdue ones. One failing dispute
// never aborts the run; failures are collected into the Report.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
	"github.com/heartmarshall/credit-disputer/internal/service/letter"
	"github.com/heartmarshall/credit-disputer/internal/service/lifecycle"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type disputeReader interface {
	List(ctx context.Context, f domain.DisputeFilter) ([]domain.Dispute, error)
}

type userReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type accountReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

type lifecycleService interface {
	Dispatch(ctx context.Context, id uuid.UUID, send lifecycle.Sender) (lifecycle.Outcome, error)
	ApplyCarrierStatus(ctx context.Context, id uuid.UUID, cs domain.CarrierStatus) (lifecycle.Outcome, error)
	MarkInvalidTracking(ctx context.Context, id uuid.UUID) (lifecycle.Outcome, error)
	SendFollowUp(ctx context.Context, id uuid.UUID, send lifecycle.FollowUpSender) (lifecycle.Outcome, error)
}

type letterService interface {
	Generate(ctx context.Context, facts domain.DisputeFacts) letter.Letter
	GenerateFollowUp(ctx context.Context, facts domain.DisputeFacts, dir escalation.Directive, daysSince int) letter.Letter
}

type mailService interface {
	Send(ctx context.Context, req domain.MailRequest) (string, error)
	PollStatus(ctx context.Context, trackingID string) (domain.CarrierStatus, error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// ---------------------------------------------------------------------------
// Steps and report
// ---------------------------------------------------------------------------

// Step is one phase of a run.
type Step string

const (
	StepSend     Step = "send"
	StepPoll     Step = "poll"
	StepEscalate Step = "escalate"
)

// AllSteps is the default run order.
var AllSteps = []Step{StepSend, StepPoll, StepEscalate}

// ParseSteps parses a comma-separated step list. An empty string means all
// steps. Steps always run in send, poll, escalate order.
func ParseSteps(s string) ([]Step, error) {
	if strings.TrimSpace(s) == "" {
		return AllSteps, nil
	}
	want := make(map[Step]bool)
	for _, part := range strings.Split(s, ",") {
		step := Step(strings.ToLower(strings.TrimSpace(part)))
		switch step {
		case StepSend, StepPoll, StepEscalate:
			want[step] = true
		default:
			return nil, fmt.Errorf("unknown step %q", part)
		}
	}
	steps := make([]Step, 0, len(want))
	for _, step := range AllSteps {
		if want[step] {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

// RunOptions selects the steps of a run. Nil Steps means all.
type RunOptions struct {
	Steps []Step
}

// Failure is one dispute that could not be processed.
type Failure struct {
	DisputeID uuid.UUID
	Reason    string
}

// StepSummary counts the outcome of each dispute a step looked at.
// Skipped disputes needed no change or were not reached before a stop.
type StepSummary struct {
	Step      Step
	Succeeded int
	Failed    int
	Skipped   int
	Failures  []Failure
	// Err is set when the step could not list its disputes at all.
	Err error
}

// Report is the end-of-run summary.
type Report struct {
	StartedAt   time.Time
	FinishedAt  time.Time
	Steps       []StepSummary
	Interrupted bool
}

// Failed returns the number of failed disputes across steps, plus one for
// every step that could not list its work.
func (r Report) Failed() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Failed
		if s.Err != nil {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the reconciliation job.
type Service struct {
	disputes  disputeReader
	users     userReader
	accounts  accountReader
	lifecycle lifecycleService
	letters   letterService
	mail      mailService
	notify    notifier
	cfg       config.ReconcileConfig
	// followUpEvery is the lifecycle follow-up interval; the escalate step
	// only lists disputes already due.
	followUpEvery time.Duration
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates the reconciliation job. notify may be nil.
func NewService(
	log *slog.Logger,
	cfg config.ReconcileConfig,
	followUpInterval time.Duration,
	disputes disputeReader,
	users userReader,
	accounts accountReader,
	lc lifecycleService,
	letters letterService,
	mail mailService,
	notify notifier,
) *Service {
	return &Service{
		disputes:  disputes,
		users:     users,
		accounts:  accounts,
		lifecycle: lc,
		letters:   letters,
		mail:      mail,
		notify:    notify,
		cfg:       cfg,

		followUpEvery: followUpInterval,
		log:           log.With("service", "reconcile"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Run executes the selected steps in order. A cancelled ctx stops the run
// between disputes; disputes already started finish on their own deadline.
func (s *Service) Run(ctx context.Context, opts RunOptions) Report {
	steps := opts.Steps
	if len(steps) == 0 {
		steps = AllSteps
	}

	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	report := Report{StartedAt: s.now()}
	s.log.InfoContext(ctx, "reconcile started", slog.Any("steps", steps), slog.Int("workers", s.workers()))

	for _, step := range steps {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		var sum StepSummary
		switch step {
		case StepSend:
			sum = s.sendStep(ctx)
		case StepPoll:
			sum = s.pollStep(ctx)
		case StepEscalate:
			sum = s.escalateStep(ctx)
		}
		report.Steps = append(report.Steps, sum)
		s.logSummary(ctx, sum)
	}

	if ctx.Err() != nil {
		report.Interrupted = true
	}
	report.FinishedAt = s.now()

	s.log.InfoContext(ctx, "reconcile finished",
		slog.Int("failed", report.Failed()),
		slog.Bool("interrupted", report.Interrupted),
		slog.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}

func (s *Service) logSummary(ctx context.Context, sum StepSummary) {
	if sum.Err != nil {
		s.log.ErrorContext(ctx, "reconcile step failed",
			slog.String("step", string(sum.Step)),
			slog.String("error", sum.Err.Error()),
		)
		return
	}
	s.log.InfoContext(ctx, "reconcile step done",
		slog.String("step", string(sum.Step)),
		slog.Int("succeeded", sum.Succeeded),
		slog.Int("failed", sum.Failed),
		slog.Int("skipped", sum.Skipped),
	)
	for _, f := range sum.Failures {
		s.log.WarnContext(ctx, "dispute not reconciled",
			slog.String("step", string(sum.Step)),
			slog.String("dispute_id", f.DisputeID.String()),
			slog.String("reason", f.Reason),
		)
	}
}

func (s *Service) workers() int {
	if s.cfg.Workers < 1 {
		return 1
	}
	return s.cfg.Workers
}

// batchLimit is the page size of each step's walk over its disputes.
func (s *Service) batchLimit() int {
	if s.cfg.BatchLimit < 1 {
		return 500
	}
	return s.cfg.BatchLimit
}
