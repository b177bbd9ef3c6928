// Package reporting computes the derived reports: financial totals,
// health summaries and analytics snapshots. Aggregations are pure reads
// over the entity stores; only analytics generation writes, and it only
// ever appends.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
)

// Reports is the read/report surface exposed to handlers and the
// scheduler. CachedService decorates it.
type Reports interface {
	Financial(ctx context.Context, q FinancialQuery) (*models.FinancialReport, error)
	Health(ctx context.Context, farmID string) (*models.HealthReport, error)
	GenerateAnalytics(ctx context.Context, farmID, period string) (*models.Analytics, error)
	ListAnalytics(ctx context.Context, farmID string) ([]models.Analytics, error)
}

// Service implements Reports against the entity stores.
type Service struct {
	birds        repository.Store[models.Bird]
	transactions repository.Store[models.Transaction]
	health       repository.Store[models.HealthRecord]
	analytics    repository.Store[models.Analytics]
	logger       *zap.Logger
	now          func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(stores *repository.Stores, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		birds:        stores.Birds,
		transactions: stores.Transactions,
		health:       stores.HealthRecords,
		analytics:    stores.Analytics,
		logger:       logger,
		now:          time.Now,
	}
}

// FinancialQuery scopes a financial report. From/To bound the
// accounting date inclusively when set; Detailed additionally returns
// the matched transactions.
type FinancialQuery struct {
	FarmID   string
	From     *time.Time
	To       *time.Time
	Detailed bool
}

// Financial folds the farm's completed transactions into totals and a
// per-category sum. Pending and cancelled movements are excluded from
// all figures.
func (s *Service) Financial(ctx context.Context, q FinancialQuery) (*models.FinancialReport, error) {
	if q.FarmID == "" {
		return nil, fmt.Errorf("%w: farm id required", domain.ErrInvalidInput)
	}

	all, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	report := &models.FinancialReport{
		FarmID:     q.FarmID,
		From:       q.From,
		To:         q.To,
		ByCategory: make(map[string]float64),
	}

	for _, tx := range all {
		if tx.FarmID != q.FarmID || tx.Status != models.TransactionCompleted {
			continue
		}
		if q.From != nil && tx.Date.Before(*q.From) {
			continue
		}
		if q.To != nil && tx.Date.After(*q.To) {
			continue
		}

		switch tx.Type {
		case models.TransactionSale:
			report.TotalSales += tx.Amount
		case models.TransactionExpense:
			report.TotalExpenses += tx.Amount
		case models.TransactionInvestment:
			report.TotalInvestments += tx.Amount
		}
		report.ByCategory[tx.Category] += tx.Amount
		if q.Detailed {
			report.Transactions = append(report.Transactions, tx)
		}
	}

	report.NetProfit = report.TotalSales - report.TotalExpenses
	return report, nil
}

// Health summarizes the farm's veterinary records: vaccination count,
// untreated diseases, and follow-ups still ahead of the current time.
func (s *Service) Health(ctx context.Context, farmID string) (*models.HealthReport, error) {
	if farmID == "" {
		return nil, fmt.Errorf("%w: farm id required", domain.ErrInvalidInput)
	}

	records, err := s.health.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load health records: %w", err)
	}

	now := s.now().UTC()
	report := &models.HealthReport{
		FarmID:            farmID,
		ActiveDiseases:    []models.HealthRecord{},
		UpcomingFollowUps: []models.HealthRecord{},
	}

	for _, record := range records {
		if record.FarmID != farmID {
			continue
		}
		if record.Type == models.HealthVaccination {
			report.TotalVaccinations++
		}
		if record.Type == models.HealthDisease && record.Treatment == "" {
			report.ActiveDiseases = append(report.ActiveDiseases, record)
		}
		if record.NextFollowUp != nil && record.NextFollowUp.After(now) {
			report.UpcomingFollowUps = append(report.UpcomingFollowUps, record)
		}
	}

	return report, nil
}

// GenerateAnalytics computes the farm's operational ratios and appends
// them as a new snapshot. Prior snapshots are never overwritten.
func (s *Service) GenerateAnalytics(ctx context.Context, farmID, period string) (*models.Analytics, error) {
	if farmID == "" {
		return nil, fmt.Errorf("%w: farm id required", domain.ErrInvalidInput)
	}
	parsedPeriod, err := models.ParseAnalyticsPeriod(period)
	if err != nil {
		return nil, err
	}

	birds, err := s.birds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load birds: %w", err)
	}

	var totalBirds, deceased int
	var totalFeed, totalWeight float64
	for _, bird := range birds {
		if bird.FarmID != farmID {
			continue
		}
		totalBirds += bird.Quantity
		if bird.Status == models.BirdDeceased {
			deceased += bird.Quantity
		}
		totalFeed += bird.FeedConsumption
		totalWeight += bird.Weight * float64(bird.Quantity)
	}

	financial, err := s.Financial(ctx, FinancialQuery{FarmID: farmID})
	if err != nil {
		return nil, err
	}

	metrics := models.AnalyticsMetrics{
		Revenue:  financial.TotalSales,
		Expenses: financial.TotalExpenses,
		// Production rate needs a laying-rate source the data model does
		// not carry yet; reported as 0 until one exists.
		ProductionRate: 0,
	}
	if totalBirds > 0 {
		metrics.MortalityRate = float64(deceased) / float64(totalBirds) * 100
	}
	if totalWeight > 0 {
		metrics.FeedConversionRatio = totalFeed / totalWeight
	}
	if metrics.Revenue > 0 {
		metrics.ProfitMargin = (metrics.Revenue - metrics.Expenses) / metrics.Revenue * 100
	}

	snapshot := &models.Analytics{
		ID:        uuid.NewString(),
		FarmID:    farmID,
		Period:    parsedPeriod,
		Metrics:   metrics,
		CreatedAt: s.now().UTC(),
	}
	if err := s.analytics.Insert(ctx, *snapshot); err != nil {
		return nil, fmt.Errorf("persist analytics for farm %s: %w", farmID, err)
	}

	s.logger.Info("analytics snapshot generated",
		zap.String("farm_id", farmID),
		zap.String("period", period),
		zap.Float64("mortality_rate", metrics.MortalityRate),
		zap.Float64("profit_margin", metrics.ProfitMargin))

	return snapshot, nil
}

// ListAnalytics returns the farm's snapshots in generation order.
func (s *Service) ListAnalytics(ctx context.Context, farmID string) ([]models.Analytics, error) {
	all, err := s.analytics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}

	out := make([]models.Analytics, 0, len(all))
	for _, snapshot := range all {
		if snapshot.FarmID == farmID {
			out = append(out, snapshot)
		}
	}
	return out, nil
}
