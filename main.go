package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ysads/cookbook/internal/config"
	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/handler/getrecipe"
	"github.com/ysads/cookbook/internal/handler/importrecipe"
	"github.com/ysads/cookbook/internal/handler/listimports"
	"github.com/ysads/cookbook/internal/handler/listrecipes"
	"github.com/ysads/cookbook/internal/handler/rejectimport"
	"github.com/ysads/cookbook/internal/importer"
	"github.com/ysads/cookbook/internal/source"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	if err := run(); err != nil {
		slog.Error("main: server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	confFS, err := fs.Sub(confFiles, "conf")
	if err != nil {
		return fmt.Errorf("main: open embedded config: %w", err)
	}
	conf, err := config.Load(confFS)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cookbookdb.Open(conf.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close store", "error", err)
		}
	}()

	fetcher := importer.NewCollyFetcher(conf.Scraper.UserAgent,
		time.Duration(conf.Scraper.TimeoutSeconds)*time.Second)
	imp := importer.New(fetcher, source.NewRegistry())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/import", importrecipe.NewHandler(imp, store))
		r.Method(http.MethodGet, "/imports", listimports.NewHandler(store))
		r.Method(http.MethodPost, "/imports/reject", rejectimport.NewHandler(store))
		r.Method(http.MethodGet, "/recipes", listrecipes.NewHandler(store))
		r.Method(http.MethodGet, "/recipes/{id}", getrecipe.NewHandler(store))
	})

	srv := &http.Server{
		Addr:              conf.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "main: listening", "address", conf.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("main: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("main: shutdown: %w", err)
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.InfoContext(r.Context(), "main: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}
