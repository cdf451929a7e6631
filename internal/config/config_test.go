package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DRIVETRAIN_TEST_DIR", "/tmp/sales")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde only", in: "~", want: home},
		{name: "tilde prefix", in: "~/data/sales.csv", want: filepath.Join(home, "data", "sales.csv")},
		{name: "env var", in: "$DRIVETRAIN_TEST_DIR/sales.csv", want: "/tmp/sales/sales.csv"},
		{name: "plain", in: "/var/lib/sales.csv", want: "/var/lib/sales.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultStoragePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName, "sales.db"), DefaultStoragePath())
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("service account from viper", func(t *testing.T) {
		viper.Reset()
		viper.Set("sheets.service_account_path", "/keys/sa.json")
		viper.Set("sheets.spreadsheet_name", "EV Sales")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "EV Sales", cfg.SpreadsheetName)
	})

	t.Run("oauth from environment", func(t *testing.T) {
		viper.Reset()
		viper.Set("sheets.token_file", filepath.Join(t.TempDir(), "missing.json"))
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "id")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "id", cfg.ClientID)
		assert.Equal(t, "refresh", cfg.RefreshToken)
	})

	t.Run("no credentials", func(t *testing.T) {
		viper.Reset()
		viper.Set("sheets.token_file", filepath.Join(t.TempDir(), "missing.json"))
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

		_, err := LoadSheetsConfig()
		assert.Error(t, err)
	})
}
