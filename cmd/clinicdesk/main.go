package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/config"
	v1 "github.com/dentware/clinicdesk/internal/handler/v1"
	"github.com/dentware/clinicdesk/internal/service"
	"github.com/dentware/clinicdesk/internal/store"
	"github.com/dentware/clinicdesk/pkg/auth"
	"github.com/dentware/clinicdesk/pkg/database"
	"github.com/dentware/clinicdesk/pkg/logger"
	"github.com/dentware/clinicdesk/pkg/metrics"
	"github.com/dentware/clinicdesk/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "clinicdesk:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("store_driver", cfg.Store.Driver),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	kv, err := openKV(cfg, log)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	collector := metrics.NewCollector(cfg.App.Name)
	dataStore := store.Open(kv, log, collector)

	auditSvc := service.NewAuditService(dataStore, log, collector)
	defer auditSvc.Shutdown()

	jwtManager := auth.NewJWTManager(cfg.JWT)
	directory := service.DefaultDirectory()

	authSvc := service.NewAuthService(directory, dataStore, jwtManager, auditSvc, log, collector)
	patientSvc := service.NewPatientService(dataStore, auditSvc, log)
	incidentSvc := service.NewIncidentService(dataStore, auditSvc, log)
	reportSvc := service.NewReportService(dataStore, log)
	portalSvc := service.NewPortalService(dataStore, log)
	settingsSvc := service.NewSettingsService(dataStore, auditSvc, log)

	router := v1.NewRouter(v1.RouterDeps{
		Config:      cfg,
		Log:         log,
		Metrics:     collector,
		JWTManager:  jwtManager,
		AuthSvc:     authSvc,
		PatientSvc:  patientSvc,
		IncidentSvc: incidentSvc,
		ReportSvc:   reportSvc,
		PortalSvc:   portalSvc,
		SettingsSvc: settingsSvc,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("stopped")
	return nil
}

// openKV builds the persistence backend selected by STORE_DRIVER.
func openKV(cfg *config.Config, log *zap.Logger) (store.KV, error) {
	switch cfg.Store.Driver {
	case "memory":
		return store.NewMemKV(), nil
	case "sqlite":
		return store.NewSQLiteKV(cfg.Store.SQLitePath)
	case "postgres":
		db, err := database.Connect(cfg.Store.Postgres)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, log); err != nil {
			return nil, err
		}
		return store.NewPostgresKV(db), nil
	default:
		return store.NewFileKV(cfg.Store.Dir)
	}
}
