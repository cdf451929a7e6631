package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/drivetrain/internal/cli"
	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/config"
	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <sheet>",
		Short: "Store a sales sheet in the local dataset store",
		Long: `Read a CSV or XLSX sales sheet and keep its raw rows in the SQLite dataset
store, so later commands can use --dataset NAME instead of the file.

Importing under an existing name replaces that dataset.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("name", "", "dataset name (default: the file name without extension)")
	cmd.Flags().String("sheet", "", "worksheet of an .xlsx file (default: the first one)")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	path := config.ExpandPath(args[0])

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := handler.HandleInterrupts(cmd.Context(), "Import", "Nothing was saved.")
	defer stop()

	rows, err := dataset.Open(ctx, path, setting(cmd, "sheet", "dataset.sheet"))
	if err != nil {
		return err
	}

	// refuse sheets the chart could not show
	ds, err := dataset.Load(rows, dataset.Options{Strict: viper.GetBool("dataset.strict")})
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var progress func(done, total int)
	if hide, _ := cmd.Flags().GetBool("no-progress"); !hide {
		bar := progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Importing rows...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr())
			}),
		)
		progress = func(done, _ int) { _ = bar.Set(done) }
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info, err := store.SaveRows(ctx, name, abs, rows, progress)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	common.LogInfo("imported dataset", common.Fields{"name": info.Name, "rows": info.Rows, "checksum": info.Checksum})
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
		"Imported %q: %d rows, %d months, %d vehicles", info.Name, info.Rows, ds.Months(), len(ds.Lineup))))
	return nil
}
