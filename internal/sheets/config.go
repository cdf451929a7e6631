// Package sheets pushes the sales tables of a dataset to a Google spreadsheet.
package sheets

import (
	"errors"
	"time"
)

// DefaultSpreadsheetName is the title of a spreadsheet created on first push.
const DefaultSpreadsheetName = "Vehicle Sales"

// Configuration errors.
var (
	ErrNoAuth        = errors.New("no authentication method configured")
	ErrMultipleAuth  = errors.New("multiple authentication methods configured; use either OAuth2 or service account")
	ErrBatchSize     = errors.New("batch size must be positive")
	ErrRetryAttempts = errors.New("retry attempts cannot be negative")
	ErrRetryDelay    = errors.New("retry delay cannot be negative")
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		EnableFormatting: true,
		TimeZone:         "UTC",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// HasOAuth reports whether the OAuth2 client and refresh token are all set.
func (c *Config) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasServiceAccount := c.ServiceAccountPath != ""

	if !c.HasOAuth() && !hasServiceAccount {
		return ErrNoAuth
	}
	if c.HasOAuth() && hasServiceAccount {
		return ErrMultipleAuth
	}

	if c.BatchSize <= 0 {
		return ErrBatchSize
	}
	if c.RetryAttempts < 0 {
		return ErrRetryAttempts
	}
	if c.RetryDelay < 0 {
		return ErrRetryDelay
	}

	return nil
}
