package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"poultryfarm/internal/config"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
	"poultryfarm/internal/repository/sheets"
	"poultryfarm/internal/service/alerts"
	"poultryfarm/internal/service/reporting"
)

// Scheduler manages the recurring jobs: nightly analytics snapshots,
// the morning low-stock sweep, and the optional spreadsheet export.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.ReportingConfig
	farms     repository.Store[models.Farm]
	reports   reporting.Reports
	alertsSvc *alerts.Service
	exporter  sheets.Exporter
	logger    *zap.Logger
}

// New creates a scheduler instance. The exporter may be nil.
func New(cfg config.ReportingConfig, farms repository.Store[models.Farm], reports reporting.Reports, alertsSvc *alerts.Service, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		cfg:       cfg,
		farms:     farms,
		reports:   reports,
		alertsSvc: alertsSvc,
		exporter:  exporter,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("analytics_cron", s.cfg.AnalyticsCron),
		zap.String("sweep_cron", s.cfg.SweepCron))

	if _, err := s.cron.AddFunc(s.cfg.AnalyticsCron, s.generateDailyAnalytics); err != nil {
		s.logger.Error("failed to schedule analytics job", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.SweepCron, s.runLowStockSweep); err != nil {
		s.logger.Error("failed to schedule low stock sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// generateDailyAnalytics appends a daily snapshot for every farm and
// mirrors it to the export sink when one is configured.
func (s *Scheduler) generateDailyAnalytics() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	farms, err := s.farms.List(ctx)
	if err != nil {
		s.logger.Error("analytics job failed to list farms", zap.Error(err))
		return
	}

	for _, farm := range farms {
		snapshot, err := s.reports.GenerateAnalytics(ctx, farm.ID, string(models.PeriodDaily))
		if err != nil {
			s.logger.Error("daily analytics failed",
				zap.String("farm_id", farm.ID), zap.Error(err))
			continue
		}

		if s.exporter == nil {
			continue
		}
		if err := s.exporter.AppendAnalytics(ctx, *snapshot); err != nil {
			s.logger.Error("analytics export failed",
				zap.String("farm_id", farm.ID), zap.Error(err))
		}

		report, err := s.reports.Financial(ctx, reporting.FinancialQuery{FarmID: farm.ID})
		if err != nil {
			s.logger.Error("financial summary failed",
				zap.String("farm_id", farm.ID), zap.Error(err))
			continue
		}
		if err := s.exporter.AppendFinancialSummary(ctx, *report); err != nil {
			s.logger.Error("financial export failed",
				zap.String("farm_id", farm.ID), zap.Error(err))
		}
	}

	s.logger.Info("daily analytics generated", zap.Int("farms", len(farms)))
}

// runLowStockSweep delegates to the alert service.
func (s *Scheduler) runLowStockSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.alertsSvc.Sweep(ctx); err != nil {
		s.logger.Error("low stock sweep failed", zap.Error(err))
	}
}
