package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vet-clinic-api/internal/adapters/storage/gormstore"
	"vet-clinic-api/internal/router"
)

func runServe(ctx context.Context) error {
	d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	if d.cfg.Database.AutoMigrate {
		if err := gormstore.Migrate(ctx, d.db); err != nil {
			return err
		}
	}

	h, err := router.NewRouter(router.Options{
		Logger:   d.log,
		DB:       d.db,
		Tokens:   d.tokens,
		Files:    d.files,
		Email:    d.email,
		WhatsApp: d.whatsapp,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:         d.cfg.HTTP.Addr,
		Handler:      h,
		ReadTimeout:  d.cfg.HTTP.ReadTimeout,
		WriteTimeout: d.cfg.HTTP.WriteTimeout,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		d.log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	d.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(ctx context.Context) error {
	d, err := setup(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	if err := gormstore.Migrate(ctx, d.db); err != nil {
		return err
	}
	d.log.Info("migrations applied", "driver", d.cfg.Database.Driver)
	return nil
}
