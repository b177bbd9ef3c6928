package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"poultryfarm/internal/config"
	"poultryfarm/internal/realtime"
	"poultryfarm/internal/repository"
	"poultryfarm/internal/repository/memory"
	"poultryfarm/internal/repository/mongodb"
	"poultryfarm/internal/repository/sheets"
	"poultryfarm/internal/scheduler"
	"poultryfarm/internal/server/handlers"
	"poultryfarm/internal/server/router"
	alertsvc "poultryfarm/internal/service/alerts"
	ordersvc "poultryfarm/internal/service/orders"
	registrysvc "poultryfarm/internal/service/registry"
	reportingsvc "poultryfarm/internal/service/reporting"
	"poultryfarm/pkg/clients/notify"
	"poultryfarm/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(os.Getenv("LOG_LEVEL")))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var stores *repository.Stores
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		stores = memory.NewStores()
		baseLogger.Warn("using in-memory storage, data will not survive restarts")
	default:
		mongoClient, err := mongodb.Connect(context.Background(), cfg.Storage.MongoURI, cfg.Storage.MongoDBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb stores", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		stores = mongodb.NewStores(mongoClient)
	}

	hub := realtime.NewHub(baseLogger.Named("realtime"))
	go hub.Run()

	var sender alertsvc.TextSender
	if cfg.Notify.Enabled() {
		sender = notify.NewClient(cfg.Notify)
		baseLogger.Info("alert notifications enabled")
	} else {
		baseLogger.Warn("notification credentials missing, alerts will only be logged")
	}

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
	}

	registrySvc := registrysvc.NewService(stores, baseLogger.Named("svc.registry"))
	orderSvc := ordersvc.NewService(stores, hub, baseLogger.Named("svc.orders"))
	alertSvc := alertsvc.NewService(stores, sender, cfg.Notify.RecipientID, baseLogger.Named("svc.alerts"))

	var reports reportingsvc.Reports = reportingsvc.NewService(stores, baseLogger.Named("svc.reporting"))
	if cfg.Reporting.CacheTTL > 0 {
		reports = reportingsvc.NewCachedService(reports, cfg.Reporting.CacheSize, cfg.Reporting.CacheTTL)
		baseLogger.Info("report cache enabled", zap.Duration("ttl", cfg.Reporting.CacheTTL))
	}

	registryHandler := handlers.NewRegistryHandler(registrySvc, baseLogger.Named("handlers.registry"))
	orderHandler := handlers.NewOrderHandler(orderSvc, baseLogger.Named("handlers.orders"))
	reportHandler := handlers.NewReportHandler(reports, alertSvc, baseLogger.Named("handlers.reports"))
	engine := router.New(registryHandler, orderHandler, reportHandler, hub, baseLogger.Named("router"))

	sched := scheduler.New(cfg.Reporting, stores.Farms, reports, alertSvc, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
