package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/drivetrain/internal/cli"
	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/config"
	"github.com/Veraticus/drivetrain/internal/service"
	"github.com/Veraticus/drivetrain/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newReportWriter builds the Sheets writer; tests swap it for a mock.
var newReportWriter = func(ctx context.Context, cfg sheets.Config) (service.ReportWriter, error) {
	return sheets.NewWriter(ctx, cfg, slog.Default())
}

func sheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Publish sales to Google Sheets",
	}
	cmd.AddCommand(sheetsPushCmd())
	cmd.AddCommand(sheetsAuthCmd())
	return cmd
}

func sheetsPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push [sheet]",
		Short: "Write the monthly aggregates to a Google spreadsheet",
		Long: `Write the "Type Totals" and "Vehicle Sales" tabs of a Google spreadsheet,
replacing what they held. Without sheets.spreadsheet_id a new spreadsheet is created.

Credentials come from sheets.service_account_path, or from sheets.client_id and
sheets.client_secret plus the token saved by 'drivetrain sheets auth'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSheetsPush,
	}
	addSourceFlags(cmd)
	cmd.Flags().String("spreadsheet-id", "", "spreadsheet to write to")
	return cmd
}

func runSheetsPush(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return common.NewUserError("Google Sheets is not configured; run 'drivetrain sheets auth' or set sheets.service_account_path", err)
	}
	if id, _ := cmd.Flags().GetString("spreadsheet-id"); id != "" {
		cfg.SpreadsheetID = id
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := handler.HandleInterrupts(cmd.Context(), "Push", "The spreadsheet may be partly written; push again to replace it.")
	defer stop()

	writer, err := newReportWriter(ctx, *cfg)
	if err != nil {
		return err
	}
	if err := writer.Write(ctx, ds); err != nil {
		common.LogError(err, "sheets push failed", common.Fields{"spreadsheet_id": cfg.SpreadsheetID})
		if common.IsRetryable(err) || errors.Is(err, common.ErrMaxRetries) {
			return common.NewUserError("Google Sheets did not answer in time; try again in a minute", err)
		}
		return fmt.Errorf("failed to push to Google Sheets: %w", err)
	}

	msg := fmt.Sprintf("Pushed %d months to Google Sheets", ds.Months())
	if w, ok := writer.(interface{ SpreadsheetID() string }); ok && w.SpreadsheetID() != "" {
		msg += fmt.Sprintf(": https://docs.google.com/spreadsheets/d/%s", w.SpreadsheetID())
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	return nil
}

func sheetsAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize drivetrain to write your Google spreadsheets",
		Long: `Run the OAuth2 consent flow in your browser and save the token for
'drivetrain sheets push'. Needs sheets.client_id and sheets.client_secret
(or GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET).`,
		Args: cobra.NoArgs,
		RunE: runSheetsAuth,
	}
	cmd.Flags().String("listen", sheets.DefaultCallbackAddr, "address of the local callback server")
	return cmd
}

func runSheetsAuth(cmd *cobra.Command, _ []string) error {
	clientID := firstNonEmpty(viper.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	clientSecret := firstNonEmpty(viper.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	if clientID == "" || clientSecret == "" {
		return common.NewUserError("set sheets.client_id and sheets.client_secret first", common.ErrMissingConfig)
	}

	listen, _ := cmd.Flags().GetString("listen")
	tokenFile := config.SheetsTokenFile()
	out := cmd.OutOrStdout()

	token, err := sheets.AuthenticateOAuth2Interactive(cmd.Context(), sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		CallbackAddr: listen,
		Prompt: func(authURL string) {
			_, _ = fmt.Fprintln(out, cli.FormatInfo("Open this URL in your browser to authorize drivetrain:"))
			_, _ = fmt.Fprintln(out, authURL)
		},
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if token.RefreshToken == "" {
		_, _ = fmt.Fprintln(out, cli.FormatWarning("Google returned no refresh token; revoke access and run auth again"))
	}

	_, _ = fmt.Fprintln(out, cli.FormatSuccess("Saved token to "+tokenFile))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
