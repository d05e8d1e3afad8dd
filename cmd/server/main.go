package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/message-relay/internal/api"
	"github.com/ignite/message-relay/internal/config"
	"github.com/ignite/message-relay/internal/pkg/logger"
	"github.com/ignite/message-relay/internal/relay"
	"github.com/ignite/message-relay/internal/repository/postgres"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use,
// so a stale process occupying the port fails fast instead of confusingly.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %w", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := "config/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		logger.Error("failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}
	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))

	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		logger.Error("pre-flight check failed", "error", err)
		os.Exit(1)
	}

	if cfg.Database.URL == "" {
		logger.Error("database.url (or DATABASE_URL) is required")
		os.Exit(1)
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}
	cancel()

	// The users and messages tables are the durable contract; create them
	// if this is a fresh database.
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		logger.Error("schema init failed", "error", err)
		os.Exit(1)
	}

	users := postgres.NewUserRepo(db)
	messages := postgres.NewMessageRepo(db)
	core := relay.NewDispatcher(users, messages)

	server := api.NewServer(cfg.Server, core, db, cfg.Static.WebRoot)

	addr := fmt.Sprintf("%s:%d", host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("relay listening", "addr", addr, "web_root", cfg.Static.WebRoot)
		errCh <- server.ListenAndServe(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("relay stopped")
}
