package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/config"
	"github.com/Veraticus/drivetrain/internal/tui"
	"github.com/Veraticus/drivetrain/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [sheet]",
		Short: "Explore the sales chart interactively",
		Long: `Open the stacked sales chart in the terminal.

Click a powertrain band (or focus it with tab and press enter) to see its
vehicles, then a vehicle to see it alone. Esc or the back control goes up a level.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("theme", "", fmt.Sprintf("color theme %v", themes.Names))
	cmd.Flags().Bool("no-animations", false, "jump straight to the end of every transition")
	cmd.Flags().Bool("no-mouse", false, "disable mouse clicks")

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}

	// the chart owns the terminal, so logs go to a file or nowhere
	logOut := io.Discard
	if path := viper.GetString("tui.log_file"); path != "" {
		f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	if err := common.SetupLoggerTo(logOut, level, viper.GetString("logging.format")); err != nil {
		return err
	}

	noAnimations, _ := cmd.Flags().GetBool("no-animations")
	noMouse, _ := cmd.Flags().GetBool("no-mouse")

	return tui.Run(cmd.Context(), ds,
		tui.WithTheme(themes.GetTheme(setting(cmd, "theme", "tui.theme"))),
		tui.WithFPS(viper.GetInt("tui.fps")),
		tui.WithFeatures(
			viper.GetBool("tui.animations") && !noAnimations,
			viper.GetBool("tui.mouse") && !noMouse,
			true,
			true,
		),
	)
}
