package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Veraticus/supply-flow/internal/common"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ValuesAPI is the part of the Sheets API the client depends on.
type ValuesAPI interface {
	// Get returns the formatted cell text of a range, row by row.
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	// Update writes rows starting at writeRange, interpreting values as typed by a user.
	Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]any) error
	// Clear empties a range.
	Clear(ctx context.Context, spreadsheetID, clearRange string) error
	// EnsureTabs creates the tabs that do not exist yet.
	EnsureTabs(ctx context.Context, spreadsheetID string, titles []string) error
}

// serviceAPI implements ValuesAPI on top of the generated client.
type serviceAPI struct {
	service *sheets.Service
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch config.Auth() {
	case AuthServiceAccount:
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	case AuthOAuth2:
		client := OAuth2Config{ClientID: config.ClientID, ClientSecret: config.ClientSecret}.oauth("")
		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	default:
		return nil, fmt.Errorf("%w: no Google credentials", common.ErrMissingConfig)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (s *serviceAPI) Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyAPIError(err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = fmt.Sprint(cell)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

func (s *serviceAPI) Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]any) error {
	_, err := s.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return classifyAPIError(err)
}

func (s *serviceAPI) Clear(ctx context.Context, spreadsheetID, clearRange string) error {
	_, err := s.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return classifyAPIError(err)
}

func (s *serviceAPI) EnsureTabs(ctx context.Context, spreadsheetID string, titles []string) error {
	spreadsheet, err := s.service.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return classifyAPIError(err)
	}

	existing := make(map[string]bool, len(spreadsheet.Sheets))
	for _, sh := range spreadsheet.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	var requests []*sheets.Request
	for _, title := range titles {
		if existing[title] {
			continue
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	_, err = s.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return classifyAPIError(err)
}

// classifyAPIError marks quota errors as rate limits and client errors as permanent.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrRateLimit, err)
	case apiErr.Code >= http.StatusInternalServerError:
		return &common.RetryableError{Err: err, Retryable: true}
	default:
		return &common.RetryableError{Err: err, Retryable: false}
	}
}
