package models

import (
	"fmt"
	"time"

	"poultryfarm/internal/domain"
)

// AnalyticsPeriod is the aggregation window of a generated snapshot.
type AnalyticsPeriod string

const (
	PeriodDaily   AnalyticsPeriod = "daily"
	PeriodWeekly  AnalyticsPeriod = "weekly"
	PeriodMonthly AnalyticsPeriod = "monthly"
)

// ParseAnalyticsPeriod validates a raw period value.
func ParseAnalyticsPeriod(s string) (AnalyticsPeriod, error) {
	switch AnalyticsPeriod(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return AnalyticsPeriod(s), nil
	default:
		return "", fmt.Errorf("%w: analytics period %q", domain.ErrInvalidInput, s)
	}
}

// AnalyticsMetrics are the derived operational ratios. Every ratio is
// defined as 0 when its denominator is 0, never NaN or Inf.
type AnalyticsMetrics struct {
	MortalityRate       float64 `bson:"mortality_rate" json:"mortality_rate"`
	FeedConversionRatio float64 `bson:"feed_conversion_ratio" json:"feed_conversion_ratio"`
	ProductionRate      float64 `bson:"production_rate" json:"production_rate"`
	Revenue             float64 `bson:"revenue" json:"revenue"`
	Expenses            float64 `bson:"expenses" json:"expenses"`
	ProfitMargin        float64 `bson:"profit_margin" json:"profit_margin"`
}

// Analytics is an append-only metrics snapshot. Snapshots are generated
// by the reporting service and never hand-edited or overwritten.
type Analytics struct {
	ID        string           `bson:"_id" json:"id"`
	FarmID    string           `bson:"farm_id" json:"farmId"`
	Period    AnalyticsPeriod  `bson:"period" json:"period"`
	Metrics   AnalyticsMetrics `bson:"metrics" json:"metrics"`
	CreatedAt time.Time        `bson:"created_at" json:"createdAt"`
}

func (a Analytics) Key() string { return a.ID }
