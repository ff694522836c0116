package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/growtlabs/growt/internal/config"
	"github.com/growtlabs/growt/internal/domain/models"
)

const monthlyReportRange = "Monthly!A:I"

// Exporter appends computed monthly KPI rows to an external spreadsheet.
type Exporter interface {
	AppendMonthlyPoint(ctx context.Context, point models.MonthlyPoint) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
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

// AppendMonthlyPoint appends one KPI row to the monthly report sheet.
func (e *GoogleSheetExporter) AppendMonthlyPoint(ctx context.Context, point models.MonthlyPoint) error {
	var averageWeight interface{}
	if point.AverageWeightKg != nil {
		averageWeight = *point.AverageWeightKg
	}

	values := []interface{}{
		point.MonthKey,
		point.TotalEntities,
		averageWeight,
		point.StuckOrDecliningCount,
		point.TotalEntitiesPct,
		point.AverageWeightPct,
		point.StuckLossPct,
		point.HealthScore,
		point.HealthScoreDelta,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, monthlyReportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append monthly point %s: %w", point.MonthKey, err)
	}

	e.logger.Debug("monthly point exported", zap.String("month", point.MonthKey))
	return nil
}
