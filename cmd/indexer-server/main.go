// Command indexer-server runs the package dependency indexer TCP service,
// wiring configuration loading, logging, the in-memory store, the TCP
// server, and the optional admin HTTP surface into one cobra root command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"package-indexer/internal/admin"
	"package-indexer/internal/config"
	"package-indexer/internal/logging"
	"package-indexer/internal/metrics"
	"package-indexer/internal/server"
	"package-indexer/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "indexer-server",
		Short:         "Run the package dependency indexer TCP server",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return run(cfg)
		},
	}
	config.BindFlags(cmd)
	return cmd
}

func run(cfg *config.Config) error {
	log, err := logging.New(cfg.Production, cfg.Quiet)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	st := store.New()
	m := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	srv := server.NewServer(cfg.ListenAddr, st, m, log, cfg.PoolSize)
	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting package indexer server", zap.String("addr", cfg.ListenAddr), zap.Int("pool_size", cfg.PoolSize))
		serverErr <- srv.StartWithContext(ctx)
	}()

	var adminSrv *admin.Server
	adminErr := make(chan error, 1)
	if cfg.AdminAddr != "" {
		adminSrv = admin.New(cfg.AdminAddr, st, m, log)
		go func() {
			log.Info("starting admin server", zap.String("addr", cfg.AdminAddr))
			adminErr <- adminSrv.ListenAndServe()
		}()
	}

	select {
	case <-stop:
		log.Info("received shutdown signal")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case err := <-adminErr:
		if err != nil {
			return fmt.Errorf("admin server error: %w", err)
		}
	}

	log.Info("initiating graceful shutdown")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if adminSrv != nil {
		if err := adminSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("admin server shutdown failed: %w", err)
		}
	}

	log.Info("server stopped successfully")
	return nil
}
