package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/credit-disputer/internal/adapter/postgres"
	accountrepo "github.com/heartmarshall/credit-disputer/internal/adapter/postgres/account"
	disputerepo "github.com/heartmarshall/credit-disputer/internal/adapter/postgres/dispute"
	documentrepo "github.com/heartmarshall/credit-disputer/internal/adapter/postgres/document"
	historyrepo "github.com/heartmarshall/credit-disputer/internal/adapter/postgres/history"
	userrepo "github.com/heartmarshall/credit-disputer/internal/adapter/postgres/user"
	"github.com/heartmarshall/credit-disputer/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/credit-disputer/internal/adapter/provider/lob"
	"github.com/heartmarshall/credit-disputer/internal/adapter/provider/openai"
	"github.com/heartmarshall/credit-disputer/internal/adapter/provider/webhook"
	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/account"
	"github.com/heartmarshall/credit-disputer/internal/service/dashboard"
	"github.com/heartmarshall/credit-disputer/internal/service/document"
	"github.com/heartmarshall/credit-disputer/internal/service/letter"
	"github.com/heartmarshall/credit-disputer/internal/service/lifecycle"
	"github.com/heartmarshall/credit-disputer/internal/service/reconcile"
)

type letterWriter interface {
	Write(ctx context.Context, system, prompt string) (string, error)
}

type notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// repos holds the postgres adapters over one pool.
type repos struct {
	disputes  *disputerepo.Repo
	history   *historyrepo.Repo
	accounts  *accountrepo.Repo
	documents *documentrepo.Repo
	users     *userrepo.Repo
	tx        *postgres.TxManager
}

func newRepos(pool *pgxpool.Pool) repos {
	return repos{
		disputes:  disputerepo.New(pool),
		history:   historyrepo.New(pool),
		accounts:  accountrepo.New(pool),
		documents: documentrepo.New(pool),
		users:     userrepo.New(pool),
		tx:        postgres.NewTxManager(pool),
	}
}

// services holds everything the binaries expose.
type services struct {
	lifecycle *lifecycle.Service
	accounts  *account.Service
	documents *document.Service
	dashboard *dashboard.Service
	reconcile *reconcile.Service
}

func newServices(cfg *config.Config, logger *slog.Logger, r repos) services {
	lc := lifecycle.NewService(logger, cfg.Lifecycle, r.disputes, r.history, r.accounts, r.documents, r.tx)
	letters := letter.NewService(logger, newLetterWriter(cfg.Letter, logger), cfg.Letter.Timeout)
	mail := lob.NewClient(logger, cfg.Mail)

	return services{
		lifecycle: lc,
		accounts:  account.NewService(logger, r.accounts),
		documents: document.NewService(logger, r.documents, r.disputes, r.accounts),
		dashboard: dashboard.NewService(logger, r.disputes, r.accounts),
		reconcile: reconcile.NewService(logger, cfg.Reconcile, cfg.Lifecycle.FollowUpInterval,
			r.disputes, r.users, r.accounts, lc, letters, mail, newNotifier(cfg.Notify, logger)),
	}
}

// newLetterWriter returns the configured AI writer, or nil to always use the
// built-in templates.
func newLetterWriter(cfg config.LetterConfig, logger *slog.Logger) letterWriter {
	switch cfg.Provider {
	case config.LetterProviderAnthropic:
		return anthropic.NewWriter(logger, cfg)
	case config.LetterProviderOpenAI:
		return openai.NewWriter(logger, cfg)
	default:
		return nil
	}
}

// newNotifier returns the reminder webhook, or nil when none is configured.
func newNotifier(cfg config.NotifyConfig, logger *slog.Logger) notifier {
	if !cfg.NotifyEnabled() {
		return nil
	}
	return webhook.NewNotifier(logger, cfg)
}
