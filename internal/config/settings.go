package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/Veraticus/supply-flow/internal/parse"
	"github.com/spf13/viper"
)

// Defaults for keys read outside the sheets section.
const (
	DefaultDatabasePath = "~/.local/share/supply/supply.db"
	DefaultWindowDays   = 30
)

// SetDefaults registers default values with viper.
func SetDefaults() {
	viper.SetDefault("database.path", DefaultDatabasePath)
	viper.SetDefault("parsing.number", parse.PolicyCommaDecimal)
	viper.SetDefault("parsing.date_layout", parse.DefaultDateLayout)
	viper.SetDefault("report.window_days", DefaultWindowDays)
}

// Dir returns $XDG_CONFIG_HOME/supply, falling back to ~/.config/supply.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "supply"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "supply"), nil
}

// TokenFile returns sheets.token_file, or sheets-token.json inside Dir.
func TokenFile() (string, error) {
	if path := viper.GetString("sheets.token_file"); path != "" {
		return ExpandPath(path), nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sheets-token.json"), nil
}

// DatabasePath returns the expanded snapshot database location.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// Parsing holds the text parsing policies applied at ingestion.
type Parsing struct {
	Numbers parse.NumberParser
	Dates   parse.DateParser
}

// LoadParsing resolves parsing.number and parsing.date_layout.
func LoadParsing() (Parsing, error) {
	numbers, err := parse.NumberPolicy(viper.GetString("parsing.number"))
	if err != nil {
		return Parsing{}, fmt.Errorf("%w: parsing.number: %w", common.ErrInvalidConfig, err)
	}
	return Parsing{
		Numbers: numbers,
		Dates:   parse.NewLayoutDate(viper.GetString("parsing.date_layout")),
	}, nil
}

// WindowDays returns the default period report length in days.
func WindowDays() (int, error) {
	days := viper.GetInt("report.window_days")
	if days == 0 {
		return DefaultWindowDays, nil
	}
	if days < 0 {
		return 0, fmt.Errorf("%w: report.window_days must be positive, got %d", common.ErrInvalidConfig, days)
	}
	return days, nil
}

// ExpandPath resolves a leading ~ to the home directory, then expands $VAR references.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}
