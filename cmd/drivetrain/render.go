package main

import (
	"fmt"

	"github.com/Veraticus/drivetrain/internal/cli"
	"github.com/Veraticus/drivetrain/internal/engine"
	"github.com/Veraticus/drivetrain/internal/snapshot"
	"github.com/Veraticus/drivetrain/internal/view"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [sheet]",
		Short: "Draw the chart to an SVG or PNG file",
		Long: `Draw the chart as it looks once every transition has finished, at the top
level or drilled into a powertrain (--type) or a single vehicle (--vehicle).`,
		Example: `  drivetrain render sales.csv -o all.svg
  drivetrain render sales.csv -o bev.png --type BEV
  drivetrain render sales.csv -o leaf.svg --vehicle "Nissan Leaf"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}

	addSourceFlags(cmd)
	addTargetFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file")
	cmd.Flags().String("format", "", "svg or png (default: from the output extension)")
	cmd.Flags().Float64("width", 0, "canvas width in pixels")
	cmd.Flags().Float64("height", 0, "canvas height in pixels")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}

	state, err := targetState(cmd, ds)
	if err != nil {
		return err
	}

	e, err := engine.Walk(ds, view.PathTo(state)...)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", state, err)
	}

	output, _ := cmd.Flags().GetString("output")
	opts := snapshot.DefaultOptions()
	opts.Format = snapshot.FormatForPath(output)
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		if opts.Format, err = snapshot.ParseFormat(f); err != nil {
			return err
		}
	}
	if w, _ := cmd.Flags().GetFloat64("width"); w > 0 {
		opts.Canvas.Width = w
	}
	if h, _ := cmd.Flags().GetFloat64("height"); h > 0 {
		opts.Canvas.Height = h
	}

	if err := snapshot.Write(output, e.Scene(), opts); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	caption := view.Label(state)
	if caption == "" {
		caption = "all types"
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s (%s)", output, caption)))
	return nil
}
