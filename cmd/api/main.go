package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guidedog-records/internal/adapters/queue/memory"
	"guidedog-records/internal/config"
	"guidedog-records/internal/notify"
	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/platform/metrics"
	"guidedog-records/internal/ports/auth"
	"guidedog-records/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", logger.Fields{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				log.Warn("close failed", logger.Fields{"err": err})
			}
		}
	}()

	repos, storeCloser, err := router.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, storeCloser)

	blobs, err := router.OpenBlobStore(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	jwtSvc, authCloser, err := router.NewAuth(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, authCloser)

	// sin verifier => modo dev (headers X-Debug-*)
	var verifier auth.AuthVerifier
	if !cfg.DevAuth {
		verifier = jwtSvc
	}

	sender, err := router.NewPushSender(cfg.Push, log)
	if err != nil {
		return err
	}

	q := memory.New(memory.Options{Log: log})
	defer q.Close()

	m := metrics.New()
	h, services, err := router.NewRouter(router.Options{
		Log:                    log,
		Metrics:                m,
		Repos:                  repos,
		Blobs:                  blobs,
		Publisher:              notify.NewPublisher(q),
		AuthVerifier:           verifier,
		TokenIssuer:            jwtSvc,
		TokenRevoker:           jwtSvc,
		BootstrapAdminID:       cfg.BootstrapAdminID,
		BootstrapAdminPassword: cfg.BootstrapAdminPassword,
		Pending:                func() int { return q.Pending(notify.Topic) },
	})
	if err != nil {
		return err
	}

	d := notify.NewDispatcher(notify.Options{
		Subscriptions: services.Subscriptions,
		Sender:        sender,
		BaseURL:       cfg.PublicBaseURL,
		Metrics:       m,
		Log:           log,
	})
	if err := q.StartConsuming(ctx, notify.Topic, d.Handle); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{
			"addr":     srv.Addr,
			"storage":  cfg.StorageDriver,
			"blob":     cfg.Blob.Driver,
			"push":     cfg.Push.Driver,
			"dev_auth": cfg.DevAuth,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
