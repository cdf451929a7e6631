package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/service"
	"github.com/Veraticus/drivetrain/internal/sheets"
	"github.com/Veraticus/drivetrain/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup isolates config and storage and returns the path of a fleet sheet.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("DRIVETRAIN_STORAGE_PATH", filepath.Join(dir, "sales.db"))
	t.Cleanup(viper.Reset)

	return testutil.WriteCSV(t, "fleet.csv", testutil.FleetRows())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	setup(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "drivetrain dev")
}

func TestSummary(t *testing.T) {
	sheet := setup(t)

	out, err := execute(t, "summary", sheet)
	require.NoError(t, err)

	assert.Contains(t, out, "3 months")
	for _, col := range []string{"Month", "HEV", "PHEV", "BEV", "FCEV", "Total"} {
		assert.Contains(t, out, col)
	}
	assert.Contains(t, out, "240")
	assert.Contains(t, out, "345")
	assert.Contains(t, out, "728")
}

func TestVehicles(t *testing.T) {
	sheet := setup(t)

	out, err := execute(t, "vehicles", sheet, "--type", "bev")
	require.NoError(t, err)
	assert.Contains(t, out, "Nissan Leaf")
	assert.Contains(t, out, "155")
	assert.Contains(t, out, "Tesla Model S")
	assert.NotContains(t, out, "Toyota Prius")

	_, err = execute(t, "vehicles", sheet, "--type", "diesel")
	assert.ErrorIs(t, err, errUnknownType)
}

func TestSourceSelection(t *testing.T) {
	sheet := setup(t)

	_, err := execute(t, "summary")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoSheet)
	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)

	_, err = execute(t, "summary", sheet, "--dataset", "fleet")
	assert.ErrorIs(t, err, errTwoSources)

	_, err = execute(t, "summary", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	sheet := setup(t)
	dir := t.TempDir()

	t.Run("top level", func(t *testing.T) {
		path := filepath.Join(dir, "all.svg")
		out, err := execute(t, "render", sheet, "-o", path)
		require.NoError(t, err)
		assert.Contains(t, out, "all types")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
	})

	t.Run("one vehicle", func(t *testing.T) {
		path := filepath.Join(dir, "leaf.svg")
		out, err := execute(t, "render", sheet, "-o", path, "--vehicle", "Nissan Leaf")
		require.NoError(t, err)
		assert.Contains(t, out, "Model: Nissan Leaf (BEV)")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Nissan Leaf")
	})

	t.Run("png by flag", func(t *testing.T) {
		path := filepath.Join(dir, "bev.img")
		_, err := execute(t, "render", sheet, "-o", path, "--type", "BEV", "--format", "png")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	})

	t.Run("vehicle of another type", func(t *testing.T) {
		_, err := execute(t, "render", sheet, "-o", filepath.Join(dir, "x.svg"), "--type", "HEV", "--vehicle", "Nissan Leaf")
		assert.ErrorIs(t, err, errUnknownModel)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := execute(t, "render", sheet, "-o", filepath.Join(dir, "x.svg"), "--vehicle", "Ford Model T")
		assert.ErrorIs(t, err, errUnknownModel)
	})
}

func TestExport(t *testing.T) {
	sheet := setup(t)

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fleet.json")
		out, err := execute(t, "export", sheet, "-o", path)
		require.NoError(t, err)
		assert.Contains(t, out, "json, 3 months")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Nissan Leaf")
	})

	t.Run("stdout", func(t *testing.T) {
		out, err := execute(t, "export", sheet, "-o", "-")
		require.NoError(t, err)
		assert.Contains(t, strings.SplitN(out, "\n", 2)[0], "Toyota Prius")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "export", sheet, "-o", "-", "--format", "toml")
		assert.Error(t, err)
	})
}

func TestImportAndDatasets(t *testing.T) {
	sheet := setup(t)

	out, err := execute(t, "datasets")
	require.NoError(t, err)
	assert.Contains(t, out, "No datasets imported yet")

	out, err = execute(t, "import", sheet, "--name", "fleet", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, `Imported "fleet": 6 rows, 3 months, 6 vehicles`)

	out, err = execute(t, "datasets")
	require.NoError(t, err)
	assert.Contains(t, out, "fleet")
	assert.Contains(t, out, sheet)

	out, err = execute(t, "summary", "--dataset", "fleet")
	require.NoError(t, err)
	assert.Contains(t, out, "728")

	_, err = execute(t, "datasets", "rm", "fleet")
	require.NoError(t, err)

	_, err = execute(t, "datasets", "rm", "fleet")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = execute(t, "summary", "--dataset", "fleet")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestImport_DefaultNameAndProgress(t *testing.T) {
	sheet := setup(t)

	out, err := execute(t, "import", sheet)
	require.NoError(t, err)
	assert.Contains(t, out, `Imported "fleet"`)
	assert.Contains(t, out, "Importing rows")
}

func TestSheetsPush(t *testing.T) {
	sheet := setup(t)
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

	mock := sheets.NewMockWriter()
	var gotConfig sheets.Config
	orig := newReportWriter
	newReportWriter = func(_ context.Context, cfg sheets.Config) (service.ReportWriter, error) {
		gotConfig = cfg
		return mock, nil
	}
	t.Cleanup(func() { newReportWriter = orig })

	out, err := execute(t, "sheets", "push", sheet, "--spreadsheet-id", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Pushed 3 months")
	assert.Equal(t, "abc", gotConfig.SpreadsheetID)
	assert.Equal(t, "/keys/sa.json", gotConfig.ServiceAccountPath)

	require.Equal(t, 1, mock.WriteCallCount)
	assert.Equal(t, 3, mock.LastDataset.Months())
	assert.Equal(t, 155, mock.LastDataset.VehicleTotal(model.VehicleKey("Nissan Leaf")))

	mock.SetWriteError(errors.New("quota"))
	_, err = execute(t, "sheets", "push", sheet)
	assert.ErrorContains(t, err, "quota")

	mock.SetWriteError(common.ErrMaxRetries)
	_, err = execute(t, "sheets", "push", sheet)
	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "try again")
}

func TestSheetsPush_NotConfigured(t *testing.T) {
	sheet := setup(t)
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

	_, err := execute(t, "sheets", "push", sheet)
	require.Error(t, err)
	assert.ErrorIs(t, err, sheets.ErrNoAuth)
}

func TestSheetsAuth_NeedsClient(t *testing.T) {
	setup(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")

	_, err := execute(t, "sheets", "auth")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLogLevelValidation(t *testing.T) {
	setup(t)
	_, err := execute(t, "--log-level", "loud", "version")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDatasetFromSeededStore(t *testing.T) {
	setup(t)
	db := testutil.SetupTestDBAt(t, os.Getenv("DRIVETRAIN_STORAGE_PATH"))
	db.MustImport("seeded", testutil.NewSheetBuilder().
		WithVehicle("Nissan", "Leaf", model.TypeBEV).
		WithVehicle("Toyota", "Mirai", model.TypeFCEV).
		WithMonth("2020-01", 900, 4).
		Rows())

	out, err := execute(t, "vehicles", "--dataset", "seeded")
	require.NoError(t, err)
	assert.Contains(t, out, "Nissan Leaf")
	assert.Contains(t, out, "900")
	assert.Contains(t, out, "Toyota Mirai")
}
