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
	"github.com/marcelsud/issue-webhooks/metrics"
	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/marcelsud/issue-webhooks/webhook/redis"
	"github.com/marcelsud/issue-webhooks/webhook/verify"
	"golang.org/x/sync/errgroup"
)

const TIMEOUT = 30 * time.Second

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
	if err := cfg.ValidateListener(); err != nil {
		return fmt.Errorf("invalid listener configuration: %w", err)
	}

	logger := httplog.NewLogger("webhook-listener", httplog.Options{
		JSON: true,
	})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	recorder := metrics.NewRecorder()
	exporter, err := metrics.NewOTelExporter("webhook-listener", recorder)
	if err != nil {
		return err
	}

	opts := []verify.Option{
		verify.WithTolerance(cfg.Tolerance()),
		verify.WithObserver(recorder),
		verify.WithLogger(logger),
	}
	if cfg.ReplayProtection {
		cache, err := redis.NewReplayCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer cache.Close()
		opts = append(opts, verify.WithReplayCache(cache))
		logger.Info().Str("redis", cfg.RedisAddr).Msg("replay protection enabled")
	}

	verifier, err := verify.New(cfg.WebhookSecret, opts...)
	if err != nil {
		return err
	}

	handler := webhook.LogHandler{Logger: logger}
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.ListenPort(),
		Handler:      chi.ListenerHandlers(ctx, verifier, handler, exporter.Handler()),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("port", cfg.ListenPort()).Msg("webhook listener is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		ctxTimeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
		defer cancel()

		return errors.Join(
			srv.Shutdown(ctxTimeout),
			exporter.Shutdown(ctxTimeout),
		)
	})

	return g.Wait()
}
