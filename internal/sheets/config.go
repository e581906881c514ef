// Package sheets provides the Google Sheets integration: reading purchase rows and
// writing report tabs.
package sheets

import (
	"fmt"
	"time"

	"github.com/Veraticus/supply-flow/internal/common"
)

// DefaultRecordsRange is the tab and range holding purchase rows.
const DefaultRecordsRange = "'Consulta'!A1:ZZ"

// AuthMethod is how the client obtains Google credentials.
type AuthMethod string

// Supported authentication methods.
const (
	AuthNone           AuthMethod = ""
	AuthServiceAccount AuthMethod = "service_account"
	AuthOAuth2         AuthMethod = "oauth2"
)

// Config holds the configuration for the Google Sheets client.
type Config struct {
	ClientID            string
	ClientSecret        string
	RefreshToken        string
	ServiceAccountPath  string
	SpreadsheetID       string
	RecordsRange        string
	ReportSpreadsheetID string
	RetryAttempts       int
	RetryDelay          time.Duration
}

// DefaultConfig returns the records range and retry policy used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		RecordsRange:  DefaultRecordsRange,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// Auth reports which credentials are configured. A refresh token only counts
// together with its client ID and secret.
func (c Config) Auth() AuthMethod {
	switch {
	case c.ServiceAccountPath != "":
		return AuthServiceAccount
	case c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != "":
		return AuthOAuth2
	default:
		return AuthNone
	}
}

// Validate checks that exactly one credential set and a records range are configured.
// Missing credentials wrap common.ErrMissingConfig, everything else common.ErrInvalidConfig.
func (c Config) Validate() error {
	auth := c.Auth()
	if auth == AuthNone {
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	}
	if auth == AuthServiceAccount && (c.ClientID != "" || c.RefreshToken != "") {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}

	switch {
	case c.RecordsRange == "":
		return fmt.Errorf("%w: records range cannot be empty", common.ErrInvalidConfig)
	case c.RetryAttempts < 0:
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	case c.RetryDelay < 0:
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}
