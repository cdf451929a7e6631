package model

import "time"

// StoredDataset describes a sheet imported into the dataset store.
type StoredDataset struct {
	ImportedAt time.Time
	Name       string
	Source     string
	Checksum   string
	ID         int64
	Rows       int
	Columns    int
}
