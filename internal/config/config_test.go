package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/Veraticus/supply-flow/internal/sheets"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_RECORDS_RANGE",
		"GOOGLE_SHEETS_REPORT_SPREADSHEET_ID",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Run("viper takes precedence over env", func(t *testing.T) {
		resetViper(t)
		clearSheetsEnv(t)
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
		viper.Set("sheets.client_id", "id")
		viper.Set("sheets.client_secret", "secret")
		viper.Set("sheets.refresh_token", "token")
		viper.Set("sheets.spreadsheet_id", "from-viper")
		viper.Set("sheets.report_spreadsheet_id", "reports")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-viper", cfg.SpreadsheetID)
		assert.Equal(t, "reports", cfg.ReportSpreadsheetID)
		assert.Equal(t, sheets.DefaultRecordsRange, cfg.RecordsRange)
	})

	t.Run("env fills unset keys", func(t *testing.T) {
		resetViper(t)
		clearSheetsEnv(t)
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/tmp/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
		t.Setenv("GOOGLE_SHEETS_RECORDS_RANGE", "'Compras'!A1:Z")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/sa.json", cfg.ServiceAccountPath)
		assert.Equal(t, "from-env", cfg.SpreadsheetID)
		assert.Equal(t, "'Compras'!A1:Z", cfg.RecordsRange)
	})

	t.Run("viper range beats env range", func(t *testing.T) {
		resetViper(t)
		clearSheetsEnv(t)
		t.Setenv("GOOGLE_SHEETS_RECORDS_RANGE", "'Env'!A1:Z")
		viper.Set("sheets.service_account_path", "/tmp/sa.json")
		viper.Set("sheets.records_range", "'Viper'!A1:Z")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "'Viper'!A1:Z", cfg.RecordsRange)
	})

	t.Run("refresh token from saved token file", func(t *testing.T) {
		resetViper(t)
		clearSheetsEnv(t)
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"refresh_token":"saved"}`), 0600))
		viper.Set("sheets.token_file", path)
		viper.Set("sheets.client_id", "id")
		viper.Set("sheets.client_secret", "secret")

		cfg, err := LoadSheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "saved", cfg.RefreshToken)
		assert.Equal(t, sheets.AuthOAuth2, cfg.Auth())
	})

	t.Run("no credentials", func(t *testing.T) {
		resetViper(t)
		clearSheetsEnv(t)

		_, err := LoadSheetsConfig()
		assert.Error(t, err)
	})
}

func TestLoadParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		resetViper(t)
		SetDefaults()

		p, err := LoadParsing()
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("1234.5").Equal(p.Numbers.ParseNumber("1.234,50")))
		d, ok := p.Dates.ParseDate("31/01/2024")
		require.True(t, ok)
		assert.Equal(t, 31, d.Day())
	})

	t.Run("dot decimal and ISO layout", func(t *testing.T) {
		resetViper(t)
		viper.Set("parsing.number", parse.PolicyDotDecimal)
		viper.Set("parsing.date_layout", "2006-01-02")

		p, err := LoadParsing()
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("1234.5").Equal(p.Numbers.ParseNumber("1,234.50")))
		_, ok := p.Dates.ParseDate("2024-01-31")
		assert.True(t, ok)
	})

	t.Run("unknown policy", func(t *testing.T) {
		resetViper(t)
		viper.Set("parsing.number", "roman")

		_, err := LoadParsing()
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestWindowDays(t *testing.T) {
	resetViper(t)

	days, err := WindowDays()
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowDays, days)

	viper.Set("report.window_days", 7)
	days, err = WindowDays()
	require.NoError(t, err)
	assert.Equal(t, 7, days)

	viper.Set("report.window_days", -1)
	_, err = WindowDays()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDatabasePath(t *testing.T) {
	resetViper(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/supply/supply.db"), DatabasePath())

	t.Setenv("SUPPLY_TEST_DIR", "/data")
	viper.Set("database.path", "$SUPPLY_TEST_DIR/cache.db")
	assert.Equal(t, "/data/cache.db", DatabasePath())
}

func TestDirAndTokenFile(t *testing.T) {
	resetViper(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "supply"), dir)

	path, err := TokenFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "supply", "sheets-token.json"), path)

	viper.Set("sheets.token_file", "/etc/supply/token.json")
	path, err = TokenFile()
	require.NoError(t, err)
	assert.Equal(t, "/etc/supply/token.json", path)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SUPPLY_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/x/y", filepath.Join(home, "x/y")},
		{"/abs/$SUPPLY_TEST_VAR", "/abs/value"},
		{"relative", "relative"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
