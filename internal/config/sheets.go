// Package config resolves supply settings from viper, the environment and defaults.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Veraticus/supply-flow/internal/sheets"
	"github.com/spf13/viper"
)

// sheetsBinding ties one sheets.* key to its GOOGLE_SHEETS_* fallback.
type sheetsBinding struct {
	dst  *string
	key  string
	env  string
	path bool
}

// LoadSheetsConfig resolves the Google Sheets settings. For every field the viper
// value (config file or SUPPLY_SHEETS_* env) wins, then GOOGLE_SHEETS_*, then the
// default from sheets.DefaultConfig. Without a service account or refresh token the
// token saved by `supply auth sheets` (TokenFile) supplies the refresh token.
func LoadSheetsConfig() (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	bindings := []sheetsBinding{
		{dst: &cfg.ServiceAccountPath, key: "sheets.service_account_path", env: "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", path: true},
		{dst: &cfg.ClientID, key: "sheets.client_id", env: "GOOGLE_SHEETS_CLIENT_ID"},
		{dst: &cfg.ClientSecret, key: "sheets.client_secret", env: "GOOGLE_SHEETS_CLIENT_SECRET"},
		{dst: &cfg.RefreshToken, key: "sheets.refresh_token", env: "GOOGLE_SHEETS_REFRESH_TOKEN"},
		{dst: &cfg.SpreadsheetID, key: "sheets.spreadsheet_id", env: "GOOGLE_SHEETS_SPREADSHEET_ID"},
		{dst: &cfg.RecordsRange, key: "sheets.records_range", env: "GOOGLE_SHEETS_RECORDS_RANGE"},
		{dst: &cfg.ReportSpreadsheetID, key: "sheets.report_spreadsheet_id", env: "GOOGLE_SHEETS_REPORT_SPREADSHEET_ID"},
	}

	for _, b := range bindings {
		v := viper.GetString(b.key)
		if v == "" {
			v = os.Getenv(b.env)
		}
		if v == "" {
			continue
		}
		if b.path {
			v = ExpandPath(v)
		}
		*b.dst = v
	}

	if cfg.ServiceAccountPath == "" && cfg.RefreshToken == "" {
		cfg.RefreshToken = savedRefreshToken()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func savedRefreshToken() string {
	path, err := TokenFile()
	if err != nil {
		return ""
	}
	token, err := sheets.LoadToken(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Ignoring unreadable token file", "path", path, "error", err)
		}
		return ""
	}
	return token.RefreshToken
}
