package sheets

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockValuesAPI is a testify mock of ValuesAPI.
type MockValuesAPI struct {
	mock.Mock
}

// Get implements ValuesAPI.
func (m *MockValuesAPI) Get(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	args := m.Called(ctx, spreadsheetID, readRange)
	rows, _ := args.Get(0).([][]string)
	return rows, args.Error(1)
}

// Update implements ValuesAPI.
func (m *MockValuesAPI) Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]any) error {
	args := m.Called(ctx, spreadsheetID, writeRange, rows)
	return args.Error(0)
}

// Clear implements ValuesAPI.
func (m *MockValuesAPI) Clear(ctx context.Context, spreadsheetID, clearRange string) error {
	args := m.Called(ctx, spreadsheetID, clearRange)
	return args.Error(0)
}

// EnsureTabs implements ValuesAPI.
func (m *MockValuesAPI) EnsureTabs(ctx context.Context, spreadsheetID string, titles []string) error {
	args := m.Called(ctx, spreadsheetID, titles)
	return args.Error(0)
}
