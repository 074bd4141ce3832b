package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookbrowser/internal/book"
	"bookbrowser/internal/config"
	"bookbrowser/internal/platform/nytimes"
	"bookbrowser/internal/review"
	"bookbrowser/internal/view"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if err := run(); err != nil {
		slog.Error("cannot start server", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := openDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("database alive", slog.Int("max_conns", int(cfg.DB.MaxConns)))

	renderer, err := view.New()
	if err != nil {
		return err
	}

	bookRepository := book.NewPostgresRepo(dbPool, cfg.DB.QueryTimeout)
	bookHandler := book.NewHTTPHandler(book.NewService(bookRepository), renderer, logger)

	reviewClient := nytimes.NewClient(nytimes.Config{
		BaseURL: cfg.Reviews.BaseURL,
		APIKey:  cfg.Reviews.APIKey,
		Timeout: cfg.Reviews.Timeout,
	}, logger)
	reviewHandler := review.NewHTTPHandler(review.NewService(reviewClient), renderer, logger)

	httpServer := &http.Server{
		Addr: cfg.Addr(),
		Handler: newRouter(routerDeps{
			books:      bookHandler,
			reviews:    reviewHandler,
			ping:       dbPool.Ping,
			logger:     logger,
			enableHSTS: cfg.EnableHSTS,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Reviews.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("application started", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger
}

// openDB builds the pool and pings before the port is bound.
func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", redactDSN(dsn), err)
	}
	return pool, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
