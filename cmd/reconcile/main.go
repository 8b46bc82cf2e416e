// Command reconcile runs one reconciliation pass: it mails pending disputes,
// polls the carrier for mailed ones and sends follow-ups for overdue ones.
// It is intended to be invoked by an external scheduler, not as an
// in-process goroutine.
//
// Usage:
//
//	reconcile [-steps send,poll,escalate]
//
// SIGINT or SIGTERM stops the run between disputes; a dispute already being
// processed finishes first.
//
// Exit codes: 0 = run completed (per-dispute failures are logged), 1 = setup error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/credit-disputer/internal/app"
	"github.com/heartmarshall/credit-disputer/internal/service/reconcile"
)

func main() {
	stepsFlag := flag.String("steps", "", "comma-separated steps to run (send,poll,escalate); empty runs all")
	flag.Parse()

	_ = godotenv.Load()

	steps, err := reconcile.ParseSteps(*stepsFlag)
	if err != nil {
		slog.Error("invalid -steps", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := app.Reconcile(ctx, steps)
	if err != nil {
		slog.Error("reconcile setup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("reconcile finished",
		slog.Int("failed", rep.Failed()),
		slog.Bool("interrupted", rep.Interrupted),
		slog.Duration("duration", rep.FinishedAt.Sub(rep.StartedAt)),
	)
}
