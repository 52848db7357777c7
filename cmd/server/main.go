package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"invoicescan/internal/config"
	"invoicescan/internal/handler"
	"invoicescan/internal/logger"
	"invoicescan/internal/parser"
	"invoicescan/internal/parser/openai"
	"invoicescan/internal/router"
	"invoicescan/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logr, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logr.Sync() }()

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize extractor; the live/simulated choice is made once here
	parser.RegisterProvider(openai.ProviderName, openai.Factory)
	extractor, err := parser.NewExtractor(&cfg.Parser, logr)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	// Initialize services
	invoiceSvc := service.NewInvoiceService(extractor, logr)

	// Initialize handlers
	model := ""
	if extractor.Mode() == parser.ModeLive {
		model = cfg.Parser.DefaultModel
	}
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, logr)
	healthH := handler.NewHealthHandler(extractor.Mode(), model)

	// Setup router
	r := router.Setup(logr, cfg.CORS.AllowedOrigins, invoiceH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logr.Infow("Server starting", "addr", cfg.Server.Port, "mode", extractor.Mode(), "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logr.Infow("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
