package reporting

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
	"poultryfarm/internal/repository/memory"
)

func seedTransaction(t *testing.T, stores *repository.Stores, farmID string, typ models.TransactionType, status models.TransactionStatus, category string, amount float64, date time.Time) {
	t.Helper()
	err := stores.Transactions.Insert(context.Background(), models.Transaction{
		ID:       farmID + "-" + category + "-" + string(typ) + "-" + date.Format("20060102") + "-" + string(status),
		FarmID:   farmID,
		Type:     typ,
		Category: category,
		Amount:   amount,
		Status:   status,
		Date:     date,
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func TestFinancial_Totals(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil)

	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, stores, "farm-1", models.TransactionSale, models.TransactionCompleted, "eggs", 100, day)
	seedTransaction(t, stores, "farm-1", models.TransactionExpense, models.TransactionCompleted, "feed", 40, day)
	seedTransaction(t, stores, "farm-1", models.TransactionInvestment, models.TransactionCompleted, "coop", 500, day)
	// Other farms and unsettled movements must not count.
	seedTransaction(t, stores, "farm-2", models.TransactionSale, models.TransactionCompleted, "eggs", 999, day)
	seedTransaction(t, stores, "farm-1", models.TransactionSale, models.TransactionPending, "eggs", 77, day)
	seedTransaction(t, stores, "farm-1", models.TransactionExpense, models.TransactionCancelled, "feed", 13, day)

	report, err := svc.Financial(ctx, FinancialQuery{FarmID: "farm-1"})
	if err != nil {
		t.Fatalf("financial: %v", err)
	}

	if report.TotalSales != 100 || report.TotalExpenses != 40 || report.TotalInvestments != 500 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.NetProfit != 60 {
		t.Fatalf("expected net profit 60, got %v", report.NetProfit)
	}
	if report.ByCategory["eggs"] != 100 || report.ByCategory["feed"] != 40 || report.ByCategory["coop"] != 500 {
		t.Fatalf("unexpected category sums: %+v", report.ByCategory)
	}
	if len(report.Transactions) != 0 {
		t.Fatalf("transactions should only appear in detailed mode")
	}
}

func TestFinancial_DateWindow(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil)

	seedTransaction(t, stores, "farm-1", models.TransactionSale, models.TransactionCompleted, "eggs", 10, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	seedTransaction(t, stores, "farm-1", models.TransactionSale, models.TransactionCompleted, "meat", 20, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC))
	seedTransaction(t, stores, "farm-1", models.TransactionSale, models.TransactionCompleted, "chicks", 30, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	report, err := svc.Financial(ctx, FinancialQuery{FarmID: "farm-1", From: &from, To: &to})
	if err != nil {
		t.Fatalf("financial: %v", err)
	}
	if report.TotalSales != 20 {
		t.Fatalf("expected windowed sales 20, got %v", report.TotalSales)
	}
}

func TestFinancial_Deterministic(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil)

	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, stores, "farm-1", models.TransactionSale, models.TransactionCompleted, "eggs", 100, day)
	seedTransaction(t, stores, "farm-1", models.TransactionExpense, models.TransactionCompleted, "feed", 40, day)

	first, err := svc.Financial(ctx, FinancialQuery{FarmID: "farm-1", Detailed: true})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.Financial(ctx, FinancialQuery{FarmID: "farm-1", Detailed: true})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ:\n%+v\n%+v", first, second)
	}
}

func TestFinancial_RequiresFarmID(t *testing.T) {
	svc := NewService(memory.NewStores(), nil)
	if _, err := svc.Financial(context.Background(), FinancialQuery{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestHealth_Report(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	soon := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)
	records := []models.HealthRecord{
		{ID: "h1", FarmID: "farm-1", BatchNumber: "b1", Type: models.HealthVaccination},
		{ID: "h2", FarmID: "farm-1", BatchNumber: "b1", Type: models.HealthVaccination, NextFollowUp: &soon},
		{ID: "h3", FarmID: "farm-1", BatchNumber: "b2", Type: models.HealthDisease, AffectedCount: 12},
		{ID: "h4", FarmID: "farm-1", BatchNumber: "b2", Type: models.HealthDisease, Treatment: "antibiotics"},
		{ID: "h5", FarmID: "farm-1", BatchNumber: "b3", Type: models.HealthInspection, NextFollowUp: &past},
		{ID: "h6", FarmID: "farm-2", BatchNumber: "b9", Type: models.HealthVaccination},
	}
	for _, r := range records {
		if err := stores.HealthRecords.Insert(ctx, r); err != nil {
			t.Fatalf("seed record %s: %v", r.ID, err)
		}
	}

	report, err := svc.Health(ctx, "farm-1")
	if err != nil {
		t.Fatalf("health: %v", err)
	}

	if report.TotalVaccinations != 2 {
		t.Fatalf("expected 2 vaccinations, got %d", report.TotalVaccinations)
	}
	if len(report.ActiveDiseases) != 1 || report.ActiveDiseases[0].ID != "h3" {
		t.Fatalf("unexpected active diseases: %+v", report.ActiveDiseases)
	}
	if len(report.UpcomingFollowUps) != 1 || report.UpcomingFollowUps[0].ID != "h2" {
		t.Fatalf("unexpected follow-ups: %+v", report.UpcomingFollowUps)
	}
}

func TestGenerateAnalytics_Metrics(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil)

	birds := []models.Bird{
		{ID: "b1", FarmID: "farm-1", Quantity: 90, Status: models.BirdHealthy, Weight: 2, FeedConsumption: 180},
		{ID: "b2", FarmID: "farm-1", Quantity: 10, Status: models.BirdDeceased, Weight: 1, FeedConsumption: 20},
		{ID: "b3", FarmID: "farm-2", Quantity: 1000, Status: models.BirdDeceased},
	}
	for _, b := range birds {
		if err := stores.Birds.Insert(ctx, b); err != nil {
			t.Fatalf("seed bird %s: %v", b.ID, err)
		}
	}
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, stores, "farm-1", models.TransactionSale, models.TransactionCompleted, "eggs", 200, day)
	seedTransaction(t, stores, "farm-1", models.TransactionExpense, models.TransactionCompleted, "feed", 50, day)

	snapshot, err := svc.GenerateAnalytics(ctx, "farm-1", "daily")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m := snapshot.Metrics
	if m.MortalityRate != 10 {
		t.Fatalf("expected mortality 10, got %v", m.MortalityRate)
	}
	// 200kg feed over 90*2 + 10*1 = 190kg live weight.
	if want := 200.0 / 190.0; math.Abs(m.FeedConversionRatio-want) > 1e-9 {
		t.Fatalf("expected fcr %v, got %v", want, m.FeedConversionRatio)
	}
	if m.Revenue != 200 || m.Expenses != 50 {
		t.Fatalf("unexpected money figures: %+v", m)
	}
	if m.ProfitMargin != 75 {
		t.Fatalf("expected margin 75, got %v", m.ProfitMargin)
	}
	if m.ProductionRate != 0 {
		t.Fatalf("production rate is an extension point, expected 0")
	}
	if snapshot.Period != models.PeriodDaily {
		t.Fatalf("expected daily period, got %s", snapshot.Period)
	}
}

func TestGenerateAnalytics_ZeroDenominators(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStores(), nil)

	snapshot, err := svc.GenerateAnalytics(ctx, "farm-1", "weekly")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m := snapshot.Metrics
	for name, value := range map[string]float64{
		"mortality_rate":        m.MortalityRate,
		"feed_conversion_ratio": m.FeedConversionRatio,
		"profit_margin":         m.ProfitMargin,
	} {
		if value != 0 {
			t.Fatalf("%s: expected exactly 0, got %v", name, value)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			t.Fatalf("%s: expected finite value, got %v", name, value)
		}
	}
}

func TestGenerateAnalytics_AppendsSnapshots(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil)

	if _, err := svc.GenerateAnalytics(ctx, "farm-1", "daily"); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := svc.GenerateAnalytics(ctx, "farm-1", "daily"); err != nil {
		t.Fatalf("second: %v", err)
	}

	snapshots, err := svc.ListAnalytics(ctx, "farm-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 appended snapshots, got %d", len(snapshots))
	}
	if snapshots[0].ID == snapshots[1].ID {
		t.Fatalf("snapshots must not share ids")
	}
}

func TestGenerateAnalytics_RejectsBadPeriod(t *testing.T) {
	svc := NewService(memory.NewStores(), nil)
	if _, err := svc.GenerateAnalytics(context.Background(), "farm-1", "hourly"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
