package main

import (
	"fmt"

	"github.com/Veraticus/drivetrain/internal/cli"
	"github.com/Veraticus/drivetrain/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [sheet]",
		Short: "Write the monthly aggregates to csv, json, yaml or xlsx",
		Long: `Write the per-powertrain totals and the per-vehicle sales of every month.

With -o - the result goes to stdout; --format is then needed for anything but csv.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file, or - for stdout")
	cmd.Flags().String("format", "", "csv, json, yaml or xlsx (default: from the output extension)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	name, _ := cmd.Flags().GetString("format")

	var format export.Format
	switch {
	case name != "":
		format, err = export.ParseFormat(name)
	case output == "-":
		format = export.FormatCSV
	default:
		format, err = export.FormatForPath(output)
	}
	if err != nil {
		return err
	}

	if output == "-" {
		return export.Write(cmd.OutOrStdout(), ds, format)
	}

	if err := export.WriteFile(output, ds, format); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s (%s, %d months)", output, format, ds.Months())))
	return nil
}
