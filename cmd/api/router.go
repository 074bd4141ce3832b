package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookbrowser/internal/book"
	"bookbrowser/internal/httpx"
	"bookbrowser/internal/review"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	books      *book.HTTPHandler
	reviews    *review.HTTPHandler
	ping       func(ctx context.Context) error
	logger     *slog.Logger
	enableHSTS bool
}

func newRouter(d routerDeps) http.Handler {
	router := mux.NewRouter()
	router.UseEncodedPath()
	router.Use(httpx.MetricsMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/", d.books.Index).Methods(http.MethodGet)
	router.HandleFunc("/info/{id}", d.books.Info).Methods(http.MethodGet)
	router.HandleFunc("/reviews/{title}/{author}", d.reviews.Reviews).Methods(http.MethodGet)
	// Registered last: it would otherwise swallow the fixed routes above.
	router.HandleFunc("/{letter}", d.books.ListByLetter).Methods(http.MethodGet)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.logger),
		httpx.RecoveryMiddleware(d.logger),
		httpx.SecurityHeadersMiddleware(d.enableHSTS),
	)
}
