package sheets

import (
	"context"

	"google.golang.org/api/sheets/v4"
)

// spreadsheetAPI is the slice of the Sheets API the writer needs.
type spreadsheetAPI interface {
	Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error)
	Get(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error)
	BatchUpdate(ctx context.Context, spreadsheetID string, requests []*sheets.Request) error
	Clear(ctx context.Context, spreadsheetID, rng string) error
	Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

// serviceAPI calls the live Sheets service.
type serviceAPI struct {
	srv *sheets.Service
}

func (a serviceAPI) Create(ctx context.Context, spreadsheet *sheets.Spreadsheet) (*sheets.Spreadsheet, error) {
	return a.srv.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
}

func (a serviceAPI) Get(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error) {
	return a.srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
}

func (a serviceAPI) BatchUpdate(ctx context.Context, spreadsheetID string, requests []*sheets.Request) error {
	_, err := a.srv.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

func (a serviceAPI) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := a.srv.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (a serviceAPI) Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	_, err := a.srv.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}
