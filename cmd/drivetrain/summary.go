package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/drivetrain/internal/cli"
	"github.com/Veraticus/drivetrain/internal/export"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [sheet]",
		Short: "Print monthly sales per powertrain",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummary,
	}
	addSourceFlags(cmd)
	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}

	table := export.TypeTotalsTable(ds)
	rows := make([][]string, 0, len(table.Rows)+1)
	for _, r := range table.Rows {
		rows = append(rows, stringCells(r))
	}

	totals := []string{"Total"}
	grand := 0
	for _, t := range model.TypeKeys {
		n := ds.TypeTotal(t)
		grand += n
		totals = append(totals, strconv.Itoa(n))
	}
	rows = append(rows, append(totals, strconv.Itoa(grand)))

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Sales by powertrain, %d months", ds.Months())))
	_, _ = fmt.Fprintln(out, cli.RenderTable(table.Header, rows, numericAlign(len(table.Header))...))
	return nil
}

func vehiclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles [sheet]",
		Short: "List the vehicles in the sheet with their total sales",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVehicles,
	}
	addSourceFlags(cmd)
	cmd.Flags().String("type", "", "only list vehicles of this powertrain")
	return cmd
}

func runVehicles(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}

	var only model.TypeKey
	if typeName, _ := cmd.Flags().GetString("type"); typeName != "" {
		t, ok := model.ParseTypeKey(strings.ToUpper(typeName))
		if !ok {
			return fmt.Errorf("%w: %q", errUnknownType, typeName)
		}
		only = t
	}

	var rows [][]string
	for _, v := range ds.Lineup {
		if only != "" && v.Type != only {
			continue
		}
		rows = append(rows, []string{string(v.Key), string(v.Type), strconv.Itoa(ds.VehicleTotal(v.Key))})
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(out, cli.FormatWarning("No vehicles found"))
		return nil
	}
	_, _ = fmt.Fprintln(out, cli.RenderTable([]string{"Vehicle", "Type", "Sales"}, rows, cli.AlignLeft, cli.AlignLeft, cli.AlignRight))
	return nil
}

func stringCells(row []any) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = fmt.Sprint(c)
	}
	return out
}

// numericAlign left aligns the first column and right aligns the rest.
func numericAlign(n int) []cli.Align {
	align := make([]cli.Align, n)
	for i := 1; i < n; i++ {
		align[i] = cli.AlignRight
	}
	return align
}
