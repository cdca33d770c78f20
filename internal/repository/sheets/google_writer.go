// Package sheets adapts the workbook artifact onto the Google Sheets API,
// the "write tabular data with named sheets" capability of this tool.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"inventario-backend/internal/config"
	"inventario-backend/internal/domain/models"
)

// Writer pushes a workbook to a spreadsheet container and returns its URL.
type Writer interface {
	WriteWorkbook(ctx context.Context, wb models.Workbook) (string, error)
}

// GoogleWriter implements Writer against the official Google Sheets API.
// Each export creates a fresh spreadsheet; styling is delegated to the
// configured strategy.
type GoogleWriter struct {
	service *sheetsapi.Service
	style   Style
	logger  *zap.Logger
}

// NewGoogleWriter builds a Google Sheets backed writer instance.
func NewGoogleWriter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleWriter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleWriter{
		service: service,
		style:   StyleFor(cfg.Style),
		logger:  logger,
	}, nil
}

// WriteWorkbook creates a spreadsheet carrying one tab per page, fills in
// the values and applies the styling strategy in a single batch update.
func (w *GoogleWriter) WriteWorkbook(ctx context.Context, wb models.Workbook) (string, error) {
	if len(wb.Pages) == 0 {
		return "", fmt.Errorf("workbook %q has no pages", wb.Title)
	}

	spreadsheet := &sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: wb.Title},
	}
	for _, page := range wb.Pages {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheetsapi.Sheet{
			Properties: &sheetsapi.SheetProperties{Title: page.Name},
		})
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet %q: %w", wb.Title, err)
	}

	sheetIDs := make(map[string]int64, len(created.Sheets))
	for _, sheet := range created.Sheets {
		sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
	}

	for _, page := range wb.Pages {
		payload := &sheetsapi.ValueRange{Values: pageValues(page)}
		call := w.service.Spreadsheets.Values.
			Update(created.SpreadsheetId, fmt.Sprintf("'%s'!A1", page.Name), payload).
			ValueInputOption("USER_ENTERED").
			Context(ctx)
		if _, err := call.Do(); err != nil {
			return "", fmt.Errorf("write page %q: %w", page.Name, err)
		}
		w.logger.Debug("page written",
			zap.String("page", page.Name),
			zap.Int("rows", page.RowCount()))
	}

	if requests := w.style.Requests(wb, sheetIDs); len(requests) > 0 {
		batch := &sheetsapi.BatchUpdateSpreadsheetRequest{Requests: requests}
		if _, err := w.service.Spreadsheets.BatchUpdate(created.SpreadsheetId, batch).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("apply styling: %w", err)
		}
	}

	w.logger.Info("workbook written",
		zap.String("title", wb.Title),
		zap.Int("pages", len(wb.Pages)),
		zap.String("spreadsheet_id", created.SpreadsheetId))
	return created.SpreadsheetUrl, nil
}

// pageValues flattens a page into the API's row-major cell matrix, header
// first when present.
func pageValues(page models.SheetPage) [][]interface{} {
	values := make([][]interface{}, 0, len(page.Rows)+1)
	if len(page.Header) > 0 {
		values = append(values, toCells(page.Header))
	}
	for _, row := range page.Rows {
		values = append(values, toCells(row))
	}
	return values
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
