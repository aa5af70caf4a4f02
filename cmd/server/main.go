package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rentdesk/internal/clock"
	"rentdesk/internal/config"
	"rentdesk/internal/email/noop"
	"rentdesk/internal/email/ses"
	"rentdesk/internal/handler"
	"rentdesk/internal/port"
	"rentdesk/internal/repository/postgres"
	"rentdesk/internal/router"
	"rentdesk/internal/service"
	s3storage "rentdesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	adminRepo := postgres.NewAdminRepo(db)
	propertyRepo := postgres.NewPropertyRepo(db)
	tenantRepo := postgres.NewTenantRepo(db)
	billRepo := postgres.NewBillRepo(db)
	paymentLedger := postgres.NewPaymentRepo(db)
	profitRepo := postgres.NewProfitRepo(db)

	// Initialize email delivery
	emailSender, err := newEmailSender(cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize report storage (optional; archive endpoint fails cleanly
	// without it)
	var storage port.ObjectStorage
	if cfg.Reports.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.Reports)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	sysClock := clock.System{}
	coord := service.NewRunCoordinator()

	// Initialize services
	authSvc := service.NewAuthService(adminRepo, cfg.JWT)
	adminSvc := service.NewAdminService(adminRepo)
	propertySvc := service.NewPropertyService(propertyRepo)
	tenantSvc := service.NewTenantService(tenantRepo, propertyRepo)
	generationSvc := service.NewGenerationService(tenantRepo, billRepo, emailSender, sysClock, coord, cfg.Billing)
	billSvc := service.NewBillService(billRepo, paymentLedger, profitRepo, tenantRepo, emailSender, sysClock, cfg.Billing)
	reportSvc := service.NewReportService(billRepo, storage, cfg.Reports)

	// Start the monthly generation scheduler
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scheduler *service.BillingScheduler
	if cfg.Billing.SchedulerEnabled {
		scheduler = service.NewBillingScheduler(generationSvc, sysClock, cfg.Billing)
		go scheduler.Start(ctx)
	}

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	propertyH := handler.NewPropertyHandler(propertySvc)
	tenantH := handler.NewTenantHandler(tenantSvc)
	billH := handler.NewBillHandler(billSvc)
	billingH := handler.NewBillingHandler(generationSvc, billSvc, reportSvc, scheduler)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, adminH, propertyH, tenantH, billH, billingH, healthH)

	logrus.WithField("port", cfg.Server.Port).Info("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func setupLogging(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func newEmailSender(cfg config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	default:
		return noop.NewNoopSender(), nil
	}
}
