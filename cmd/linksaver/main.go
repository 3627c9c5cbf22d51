package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linksaver/internal/auth"
	"linksaver/internal/bookmark"
	"linksaver/internal/config"
	"linksaver/internal/db"
	"linksaver/internal/enrich"
	httpx "linksaver/internal/http"
	"linksaver/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, _ := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer func() { _ = log.Sync() }()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	fetcher := enrich.New(cfg.EnrichTimeout, cfg.SummaryBaseURL, log)

	r := httpx.NewRouter(cfg, httpx.Deps{
		Accounts:  &auth.Accounts{Store: &auth.GormAccountStore{DB: gdb}},
		JWT:       jwtSvc,
		Bookmarks: &bookmark.Service{Store: &bookmark.GormStore{DB: gdb}, Enrich: fetcher},
		Log:       log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
