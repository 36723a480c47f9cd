package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/issue-webhooks/config"
	"github.com/marcelsud/issue-webhooks/internal/http/chi"
	"github.com/marcelsud/issue-webhooks/issue"
	"github.com/marcelsud/issue-webhooks/issue/memory"
	"github.com/marcelsud/issue-webhooks/issue/postgres"
	"github.com/marcelsud/issue-webhooks/metrics"
	"github.com/marcelsud/issue-webhooks/policy"
	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/marcelsud/issue-webhooks/webhook/delivery"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const TIMEOUT = 30 * time.Second

/* main.go is where every package gets wired together
 * Imports only go one way, down: the app imports the business layer, which
 * imports the storage layer
 */

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	logger := httplog.NewLogger("issue-api", httplog.Options{
		JSON: true,
	})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	p, err := policy.LoadOrDefault(cfg.WebhookPolicyFile)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	exporter, err := metrics.NewOTelExporter("issue-api", recorder)
	if err != nil {
		return err
	}

	destination := webhook.Destination{URL: cfg.WebhookURL, Secret: cfg.WebhookSecret}
	if err := destination.Validate(); err != nil {
		logger.Warn().Err(err).Msg("webhook delivery disabled")
	}

	sender := delivery.NewSender(destination, p,
		delivery.WithObserver(recorder),
		delivery.WithLogger(logger),
	)
	dispatcher := delivery.NewDispatcher(sender, logger)
	notifier := webhook.NewService(dispatcher, destination, p.EventTypes, recorder, logger)
	service := issue.NewService(repo, notifier)

	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.APIPort(),
		Handler:      chi.Handlers(ctx, service, exporter.Handler()),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("port", cfg.APIPort()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
		defer cancel()

		return errors.Join(
			srv.Shutdown(ctxTimeout),
			dispatcher.Shutdown(ctxTimeout),
			exporter.Shutdown(ctxTimeout),
		)
	})

	return g.Wait()
}

// newRepository uses PostgreSQL when DATABASE_URL is set, memory otherwise
func newRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (issue.Repository, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn().Msg("DATABASE_URL not set, issues are kept in memory")
		return memory.NewRepository(), nil
	}

	repo, err := postgres.NewRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repo.CreateTable(ctx); err != nil {
		_ = repo.Close(ctx)
		return nil, err
	}
	return repo, nil
}
