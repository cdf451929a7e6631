// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
)

// ProgressFunc reports how many of total units of work are done.
type ProgressFunc func(done, total int)

// DatasetStore defines the contract for the dataset store.
type DatasetStore interface {
	SaveRows(ctx context.Context, name, source string, rows dataset.RawRows, progress ProgressFunc) (*model.StoredDataset, error)
	LoadRows(ctx context.Context, name string) (dataset.RawRows, error)
	GetDataset(ctx context.Context, name string) (*model.StoredDataset, error)
	ListDatasets(ctx context.Context) ([]model.StoredDataset, error)
	DeleteDataset(ctx context.Context, name string) error
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter publishes the aggregates of a dataset somewhere outside the
// program.
type ReportWriter interface {
	Write(ctx context.Context, ds *model.Dataset) error
}
