package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/export"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/service"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var _ service.ReportWriter = (*Writer)(nil)

// Writer pushes the type totals and vehicle sales tables to a spreadsheet,
// one tab each.
type Writer struct {
	api    spreadsheetAPI
	logger *slog.Logger
	config Config
}

// NewWriter creates a writer backed by the Google Sheets API.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ts, err := TokenSource(ctx, config)
	if err != nil {
		return nil, err
	}

	srv, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(serviceAPI{srv: srv}, config, logger), nil
}

func newWriter(api spreadsheetAPI, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{api: api, config: config, logger: logger}
}

// SpreadsheetID returns the spreadsheet the last Write went to.
func (w *Writer) SpreadsheetID() string {
	return w.config.SpreadsheetID
}

// Write replaces the contents of the report tabs with the dataset's tables.
func (w *Writer) Write(ctx context.Context, ds *model.Dataset) error {
	if ds == nil || ds.Months() == 0 {
		return common.ErrEmptyDataset
	}

	tables := []export.Table{export.TypeTotalsTable(ds), export.VehicleSalesTable(ds)}
	w.logger.Info("starting sheets push", "months", ds.Months(), "vehicles", len(ds.Lineup))

	retry := func(name string, op func() error) error {
		opts := common.DefaultRetryOptions()
		opts.MaxAttempts = w.config.RetryAttempts
		opts.InitialDelay = w.config.RetryDelay
		opts.Operation = name
		opts.Classify = classify
		return common.WithRetry(ctx, op, opts)
	}

	var tabs map[string]int64
	err := retry("prepare spreadsheet", func() error {
		var err error
		tabs, err = w.prepareSpreadsheet(ctx, tables)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to prepare spreadsheet: %w", err)
	}

	rows := 0
	for _, table := range tables {
		values := tableValues(table)
		if err := retry("write "+table.Name, func() error { return w.writeTable(ctx, table.Name, values) }); err != nil {
			return fmt.Errorf("failed to write %s: %w", table.Name, err)
		}
		rows += len(values)
	}

	if w.config.EnableFormatting {
		err := retry("format tabs", func() error { return w.applyFormatting(ctx, tables, tabs) })
		if err != nil {
			// formatting is cosmetic; the data is already written
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets push completed",
		"spreadsheet_id", w.config.SpreadsheetID,
		"rows_written", rows)
	return nil
}

// prepareSpreadsheet opens or creates the spreadsheet, adds missing tabs,
// and returns the sheet id of every tab by title.
func (w *Writer) prepareSpreadsheet(ctx context.Context, tables []export.Table) (map[string]int64, error) {
	var spreadsheet *sheets.Spreadsheet
	var err error

	if w.config.SpreadsheetID != "" {
		spreadsheet, err = w.api.Get(ctx, w.config.SpreadsheetID)
		if err != nil {
			return nil, fmt.Errorf("failed to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
	} else {
		name := w.config.SpreadsheetName
		if name == "" {
			name = DefaultSpreadsheetName
		}
		newSheet := &sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{Title: name, TimeZone: w.config.TimeZone},
		}
		for _, t := range tables {
			newSheet.Sheets = append(newSheet.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{Title: t.Name},
			})
		}
		spreadsheet, err = w.api.Create(ctx, newSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
		}
		w.config.SpreadsheetID = spreadsheet.SpreadsheetId
		w.logger.Info("created spreadsheet", "id", spreadsheet.SpreadsheetId, "url", spreadsheet.SpreadsheetUrl)
	}

	tabs := sheetIDs(spreadsheet)

	var missing []*sheets.Request
	for _, t := range tables {
		if _, ok := tabs[t.Name]; ok {
			continue
		}
		missing = append(missing, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: t.Name}},
		})
	}
	if len(missing) == 0 {
		return tabs, nil
	}

	if err := w.api.BatchUpdate(ctx, w.config.SpreadsheetID, missing); err != nil {
		return nil, fmt.Errorf("failed to add tabs: %w", err)
	}
	spreadsheet, err = w.api.Get(ctx, w.config.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload spreadsheet: %w", err)
	}
	return sheetIDs(spreadsheet), nil
}

// writeTable clears one tab and writes its values in batches.
func (w *Writer) writeTable(ctx context.Context, tab string, values [][]any) error {
	if err := w.api.Clear(ctx, w.config.SpreadsheetID, quoteTab(tab)); err != nil {
		return fmt.Errorf("failed to clear tab: %w", err)
	}

	batch := w.config.BatchSize
	if batch <= 0 {
		batch = len(values)
	}

	for start := 0; start < len(values); start += batch {
		end := min(start+batch, len(values))
		rng := fmt.Sprintf("%s!A%d", quoteTab(tab), start+1)
		if err := w.api.Update(ctx, w.config.SpreadsheetID, rng, values[start:end]); err != nil {
			return fmt.Errorf("failed to write rows %d-%d: %w", start+1, end, err)
		}
		w.logger.Debug("wrote batch", "tab", tab, "start", start+1, "end", end)
	}
	return nil
}

// applyFormatting bolds and freezes the header row of every tab and sizes
// the columns to fit.
func (w *Writer) applyFormatting(ctx context.Context, tables []export.Table, tabs map[string]int64) error {
	var requests []*sheets.Request
	for _, t := range tables {
		id, ok := tabs[t.Name]
		if !ok {
			continue
		}
		requests = append(requests,
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{SheetId: id, StartRowIndex: 0, EndRowIndex: 1},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
							BackgroundColor: &sheets.Color{
								Red: 0.9, Green: 0.9, Blue: 0.9,
							},
						},
					},
					Fields: "userEnteredFormat(textFormat,backgroundColor)",
				},
			},
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:        id,
						GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
			&sheets.Request{
				AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
					Dimensions: &sheets.DimensionRange{
						SheetId:    id,
						Dimension:  "COLUMNS",
						StartIndex: 0,
						EndIndex:   int64(len(t.Header)),
					},
				},
			},
		)
	}
	if len(requests) == 0 {
		return nil
	}
	return w.api.BatchUpdate(ctx, w.config.SpreadsheetID, requests)
}

// tableValues flattens a table into rows for the values API, header first.
func tableValues(t export.Table) [][]any {
	values := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	values = append(values, header)
	return append(values, t.Rows...)
}

func sheetIDs(spreadsheet *sheets.Spreadsheet) map[string]int64 {
	out := make(map[string]int64, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil {
			out[s.Properties.Title] = s.Properties.SheetId
		}
	}
	return out
}

func quoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

// classify sorts Sheets API failures by status, honouring Retry-After on
// quota and server errors. Other errors are left for a plain retry.
func classify(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return common.ClassifyStatus(apiErr.Code, common.ParseRetryAfter(apiErr.Header.Get("Retry-After")), err)
}
