// Package sheets is an optional append-only export sink that mirrors
// generated reports into a Google Sheets spreadsheet for the farm
// owners. It is never read back by the application.
package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"poultryfarm/internal/config"
	"poultryfarm/internal/domain/models"
)

const (
	analyticsRange = "Analytics!A:I"
	financialRange = "Financial!A:G"
	dateLayout     = "2006-01-02"
)

// Exporter appends report rows to a spreadsheet.
type Exporter interface {
	AppendAnalytics(ctx context.Context, snapshot models.Analytics) error
	AppendFinancialSummary(ctx context.Context, report models.FinancialReport) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendAnalytics writes one analytics snapshot as a spreadsheet row.
func (e *GoogleSheetExporter) AppendAnalytics(ctx context.Context, snapshot models.Analytics) error {
	row := []interface{}{
		snapshot.CreatedAt.Format(dateLayout),
		snapshot.FarmID,
		string(snapshot.Period),
		snapshot.Metrics.MortalityRate,
		snapshot.Metrics.FeedConversionRatio,
		snapshot.Metrics.ProductionRate,
		snapshot.Metrics.Revenue,
		snapshot.Metrics.Expenses,
		snapshot.Metrics.ProfitMargin,
	}
	return e.appendRow(ctx, analyticsRange, row)
}

// AppendFinancialSummary writes one financial report as a spreadsheet row.
func (e *GoogleSheetExporter) AppendFinancialSummary(ctx context.Context, report models.FinancialReport) error {
	row := []interface{}{
		time.Now().UTC().Format(dateLayout),
		report.FarmID,
		report.TotalSales,
		report.TotalExpenses,
		report.TotalInvestments,
		report.NetProfit,
		len(report.ByCategory),
	}
	return e.appendRow(ctx, financialRange, row)
}

func (e *GoogleSheetExporter) appendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	e.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}
