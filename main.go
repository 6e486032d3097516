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

	"go.uber.org/zap"

	"psp.com/chapter-quiz/internal/config"
	"psp.com/chapter-quiz/internal/logger"
	"psp.com/chapter-quiz/internal/questionbank"
	"psp.com/chapter-quiz/internal/quiz"
	"psp.com/chapter-quiz/internal/scraper"
	"psp.com/chapter-quiz/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bank, err := loadBank(ctx, cfg.Bank)
	if err != nil {
		log.Fatal("failed to load question bank", zap.Error(err))
	}
	log.Info("question bank loaded", zap.Int("questions", bank.Len()), zap.Int("chapters", len(bank.Chapters())))

	ctrl := quiz.NewController(bank, quiz.NewRand(cfg.Quiz.Seed))
	srv := server.New(bank, ctrl, log, server.Options{
		AllowedOrigins: cfg.HTTP.Origins(),
		RateLimit:      cfg.HTTP.RateLimit,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		var err error
		if cfg.HTTP.TLS() {
			log.Info("backend listening", zap.String("port", cfg.HTTP.Port), zap.String("scheme", "https"))
			err = httpServer.ListenAndServeTLS(cfg.HTTP.TLSCert, cfg.HTTP.TLSKey)
		} else {
			log.Info("backend listening", zap.String("port", cfg.HTTP.Port), zap.String("scheme", "http"))
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadBank reads the bank from the configured page URL, or from the file
// at Path when no URL is set.
func loadBank(ctx context.Context, cfg config.Bank) (*questionbank.Bank, error) {
	var (
		entries []questionbank.Entry
		err     error
	)
	if cfg.URL != "" {
		client := &http.Client{Timeout: 8 * time.Second}
		entries, err = scraper.FetchBank(ctx, client, cfg.URL)
	} else {
		entries, err = questionbank.ReadFile(cfg.Path, cfg.Sheet)
	}
	if err != nil {
		return nil, err
	}

	var opts []questionbank.Option
	if len(cfg.Merges) > 0 {
		opts = append(opts, questionbank.WithMerges(cfg.Merges))
	}
	return questionbank.New(entries, opts...)
}
