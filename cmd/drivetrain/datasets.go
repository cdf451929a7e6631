package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/drivetrain/internal/cli"
	"github.com/spf13/cobra"
)

func datasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List datasets in the local store",
		Args:  cobra.NoArgs,
		RunE:  runDatasets,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a stored dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasetsRemove,
	})
	return cmd
}

func runDatasets(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	list, err := store.ListDatasets(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		_, _ = fmt.Fprintln(out, cli.FormatInfo("No datasets imported yet. Try: drivetrain import sales.csv"))
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, d := range list {
		checksum := d.Checksum
		if len(checksum) > 12 {
			checksum = checksum[:12]
		}
		rows = append(rows, []string{
			d.Name,
			strconv.Itoa(d.Rows),
			strconv.Itoa(d.Columns),
			d.ImportedAt.Local().Format("2006-01-02 15:04"),
			checksum,
			d.Source,
		})
	}
	_, _ = fmt.Fprintln(out, cli.RenderTable(
		[]string{"Name", "Rows", "Columns", "Imported", "Checksum", "Source"},
		rows,
		cli.AlignLeft, cli.AlignRight, cli.AlignRight,
	))
	return nil
}

func runDatasetsRemove(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteDataset(cmd.Context(), args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted %q", args[0])))
	return nil
}
