package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/Veraticus/supply-flow/internal/cli"
	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/Veraticus/supply-flow/internal/config"
	"github.com/Veraticus/supply-flow/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNoRefreshToken = errors.New("no refresh token in OAuth2 response")

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}
	cmd.AddCommand(authSheetsCmd())
	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authorize Google Sheets access with OAuth2",
		Long: `Open the Google consent page, wait for the local callback and store the
refresh token under sheets.refresh_token in the config file.

Service accounts (sheets.service_account_path) do not need this step.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 client ID (overrides sheets.client_id)")
	cmd.Flags().String("client-secret", "", "OAuth2 client secret (overrides sheets.client_secret)")
	cmd.Flags().String("listen", "localhost:8080", "address for the OAuth2 callback server")

	return cmd
}

// oauthClient resolves the OAuth2 client credentials: flag, then viper, then GOOGLE_SHEETS_* env.
func oauthClient(cmd *cobra.Command) (id, secret string, err error) {
	first := func(flag, key, env string) string {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			return v
		}
		if v := viper.GetString(key); v != "" {
			return v
		}
		return os.Getenv(env)
	}

	id = first("client-id", "sheets.client_id", "GOOGLE_SHEETS_CLIENT_ID")
	secret = first("client-secret", "sheets.client_secret", "GOOGLE_SHEETS_CLIENT_SECRET")
	if id == "" || secret == "" {
		return "", "", common.NewUserError(
			"OAuth2 client credentials not found; set sheets.client_id and sheets.client_secret or pass --client-id and --client-secret",
			common.ErrMissingConfig)
	}
	return id, secret, nil
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	clientID, clientSecret, err := oauthClient(cmd)
	if err != nil {
		return err
	}

	tokenFile, err := config.TokenFile()
	if err != nil {
		return err
	}
	listen, _ := cmd.Flags().GetString("listen")

	slog.Info("Starting Google Sheets authorization", "token_file", tokenFile, "listen", listen)

	token, err := sheets.AuthenticateOAuth2Interactive(cmd.Context(), sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		ListenAddr:   listen,
		OpenBrowser:  openBrowser,
		Logger:       common.Component("auth"),
	})
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	if token.RefreshToken == "" {
		return common.NewUserError("Google did not return a refresh token; revoke the app's access and run 'supply auth sheets' again", errNoRefreshToken)
	}

	path, err := storeRefreshToken(clientID, clientSecret, token.RefreshToken)
	if err != nil {
		slog.Warn("Failed to update config file", "error", err)
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("Could not save the refresh token; add it to config.yaml under sheets.refresh_token"))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Google Sheets authorized; refresh token saved to "+path))
	return nil
}

// storeRefreshToken writes the OAuth2 settings into the active config file, or a
// new config.yaml in config.Dir when none was loaded. It returns the file written.
func storeRefreshToken(clientID, clientSecret, refreshToken string) (string, error) {
	viper.Set("sheets.client_id", clientID)
	viper.Set("sheets.client_secret", clientSecret)
	viper.Set("sheets.refresh_token", refreshToken)

	path := viper.ConfigFileUsed()
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return "", err
	}
	return path, nil
}

// browserCommands maps GOOS to the command that opens a URL.
var browserCommands = map[string][]string{
	"linux":   {"xdg-open"},
	"darwin":  {"open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// openBrowser opens url in the default browser. Failures are logged at debug level.
func openBrowser(url string) {
	command, ok := browserCommands[runtime.GOOS]
	if !ok {
		slog.Debug("No browser command for platform", "goos", runtime.GOOS)
		return
	}
	args := append(slices.Clone(command[1:]), url)
	if err := exec.Command(command[0], args...).Start(); err != nil { //nolint:gosec // fixed binaries, URL built locally
		slog.Debug("Failed to open browser", "error", err)
	}
}
