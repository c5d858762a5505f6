package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"onebill/internal/check"
	"onebill/internal/config"
	"onebill/internal/email/noop"
	"onebill/internal/email/ses"
	"onebill/internal/handler"
	"onebill/internal/hsn"
	"onebill/internal/logger"
	"onebill/internal/port"
	"onebill/internal/registry"
	"onebill/internal/repository/postgres"
	"onebill/internal/router"
	"onebill/internal/service"
	s3store "onebill/internal/storage/s3"
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

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	businessRepo := postgres.NewBusinessRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	purchaseRepo := postgres.NewPurchaseRepo(db)
	proofRepo := postgres.NewPaymentProofRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)

	// HSN master list; without it only the common autocomplete table is searchable.
	codes, err := hsnRepo.LoadAll(ctx)
	if err != nil {
		zlog.Warn("HSN master list unavailable, using common codes only", zap.Error(err))
	}
	catalog := hsn.NewCatalog(codes)
	checker := check.NewChecker(catalog)
	zlog.Info("HSN catalogue loaded", zap.Int("codes", catalog.Len()))

	// Initialize storage
	storage, err := s3store.NewStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(ctx, &cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}
	zlog.Info("email provider configured", zap.String("provider", cfg.Email.Provider))

	taxpayers := registry.NewClient(&cfg.Registry)
	if !cfg.Registry.Enabled() {
		zlog.Warn("GSTIN registry key not set, GSTIN lookups will be unavailable")
	}

	// Initialize services
	gstSvc := service.NewGSTService(catalog, checker, &cfg.Engine)
	businessSvc := service.NewBusinessService(businessRepo, &cfg.Engine)
	clientSvc := service.NewClientService(businessRepo, clientRepo)
	invoiceSvc := service.NewInvoiceService(businessRepo, clientRepo, invoiceRepo, sender, checker, &cfg.Engine, cfg.Email.FrontendURL)
	paymentSvc := service.NewPaymentService(invoiceRepo, proofRepo, invoiceSvc, storage, &cfg.S3)
	purchaseSvc := service.NewPurchaseService(businessRepo, purchaseRepo)
	reportSvc := service.NewReportService(businessRepo, clientRepo, invoiceRepo, purchaseRepo, storage, &cfg.S3, &cfg.Report)

	// Setup router
	r := router.Setup(
		cfg.CORS.AllowedOrigins,
		handler.NewHealthHandler(db, catalog),
		handler.NewGSTHandler(gstSvc),
		handler.NewLookupHandler(taxpayers),
		handler.NewBusinessHandler(businessSvc),
		handler.NewClientHandler(clientSvc),
		handler.NewInvoiceHandler(invoiceSvc),
		handler.NewPaymentHandler(paymentSvc),
		handler.NewPurchaseHandler(purchaseSvc),
		handler.NewReportHandler(reportSvc),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
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
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
