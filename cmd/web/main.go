// Package main serves the habit engine over HTTP. It uses the same
// habit.Session and store as the desktop app and the CLI.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/habitual/internal/config"
	"github.com/MihkelHunter/habitual/internal/exitcode"
	"github.com/MihkelHunter/habitual/internal/habit"
	"github.com/MihkelHunter/habitual/internal/store"
	"github.com/MihkelHunter/habitual/internal/web"
)

type opener func(cfg *config.Config, logger log.FieldLogger) (*habit.Store, error)

func main() {
	configPath := flag.String("config", "", "config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("config: %v", err)
		os.Exit(exitcode.ConfigError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, cfg.NewLogger(), store.Open)
	stop()
	os.Exit(code)
}

// run serves until ctx is cancelled or the server fails. The store is closed
// on every path.
func run(ctx context.Context, cfg *config.Config, logger log.FieldLogger, open opener) int {
	st, err := open(cfg, logger)
	if err != nil {
		logger.Errorf("store: %v", err)
		return exitcode.StorageError
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Errorf("close store: %v", err)
		}
	}()

	srv := web.New(habit.NewSession(st), logger)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(cfg.ListenAddr) }()

	select {
	case err := <-errc:
		if err != nil {
			logger.Errorf("server: %v", err)
			return exitcode.ServerError
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}
	return exitcode.Success
}
