package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/config"
	domainRepo "github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/infrastructure/database"
	"github.com/sangkips/till-api/internal/infrastructure/repository"
	"github.com/sangkips/till-api/internal/navigation"
	"github.com/sangkips/till-api/internal/presentation/http/handler"
	"github.com/sangkips/till-api/internal/presentation/http/routes"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/sangkips/till-api/pkg/logger"
	"github.com/sangkips/till-api/pkg/oauth"
	"github.com/sangkips/till-api/pkg/printer"
	"github.com/sangkips/till-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

const idempotencySweepInterval = time.Hour

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.AutoMigrate(db, log); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	if cfg.Database.Seed {
		if err := database.SeedDefaultData(db, log); err != nil {
			log.WithError(err).Warn("failed to seed default data")
		}
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	tillDefaults := sale.Settings{
		DefaultWarehouse:  cfg.Till.DefaultWarehouse,
		DefaultTillNumber: cfg.Till.DefaultTillNumber,
		DeliveryMethod:    sale.DeliveryCollect,
		VATInclusive:      true,
	}
	factory := sale.NewFactory(cfg.Till.DefaultWarehouse)
	if len(cfg.Till.TouchItems) > 0 {
		lines, err := sale.ParseStarterLines(cfg.Till.TouchItems)
		if err != nil {
			log.WithError(err).Fatal("invalid TILL_TOUCH_ITEMS")
		}
		factory.WithStarterLines(lines)
	}

	google := oauth.NewGoogle(oauth.GoogleConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	authService := service.NewAuthService(userRepo, jwtManager, google)
	settingsService := service.NewSettingsService(settingsRepo, tillDefaults)
	customerService := service.NewCustomerService(customerRepo, cfg.Till.PhoneRegion)
	txnService := service.NewTransactionService(txnRepo, log.WithField("module", "transactions"))
	statsService := service.NewStatsService(txnService, cfg.Till.TopN, cfg.Till.StatsMaxRecords)
	terminalService := service.NewTerminalService(ctx, service.TerminalDeps{
		Machine:     navigation.NewMachine(factory, tillDefaults),
		Settings:    settingsService,
		Documents:   txnService,
		Customers:   customerService,
		Committer:   txnService,
		Logger:      log.WithField("module", "navigation"),
		LoadTimeout: cfg.Till.LoadTimeout,
	})

	thermalPrinter, err := printer.FromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.WithError(err).Warn("failed to initialize printer, slips will only be recorded")
		thermalPrinter = printer.NewRecorder()
	}
	printerService := service.NewPrinterService(thermalPrinter, txnService, service.PrinterOptions{
		Type:      cfg.Printer.Type,
		StoreName: cfg.Printer.StoreName,
		CharWidth: cfg.Printer.CharWidth,
	}, log.WithField("module", "printer"))

	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, terminalService),
		Terminal:    handler.NewTerminalHandler(terminalService),
		Customer:    handler.NewCustomerHandler(customerService),
		Transaction: handler.NewTransactionHandler(txnService),
		Stats:       handler.NewStatsHandler(statsService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Printer:     handler.NewPrinterHandler(printerService, statsService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          log,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, log)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": port, "env": cfg.App.Env}).Infof("starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	terminalService.Wait()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log logrus.FieldLogger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				logger.LogError(log, "main", "sweepIdempotencyKeys", "delete expired keys", nil, err)
				continue
			}
			if n > 0 {
				log.WithField("deleted", n).Info("expired idempotency keys removed")
			}
		}
	}
}
