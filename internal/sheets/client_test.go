package sheets

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/supply-flow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ServiceAccountPath = "/keys/sa.json"
	cfg.SpreadsheetID = "source-sheet"
	cfg.ReportSpreadsheetID = "report-sheet"
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestClient_ReadRows(t *testing.T) {
	api := &MockValuesAPI{}
	rows := [][]string{{"Empresa", "Fornecedor"}, {"Acme", "Paper Co"}}
	api.On("Get", mock.Anything, "source-sheet", DefaultRecordsRange).Return(rows, nil).Once()

	client := NewClientWithAPI(api, testConfig(), testLogger())
	got, err := client.ReadRows(context.Background())

	require.NoError(t, err)
	assert.Equal(t, rows, got)
	api.AssertExpectations(t)
}

func TestClient_ReadRowsRetriesServerErrors(t *testing.T) {
	api := &MockValuesAPI{}
	serverErr := classifyAPIError(&googleapi.Error{Code: http.StatusServiceUnavailable})
	api.On("Get", mock.Anything, "source-sheet", DefaultRecordsRange).Return(nil, serverErr).Once()
	api.On("Get", mock.Anything, "source-sheet", DefaultRecordsRange).Return([][]string{{"h"}}, nil).Once()

	client := NewClientWithAPI(api, testConfig(), testLogger())
	got, err := client.ReadRows(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
	api.AssertNumberOfCalls(t, "Get", 2)
}

func TestClient_ReadRowsPermanentError(t *testing.T) {
	api := &MockValuesAPI{}
	notFound := classifyAPIError(&googleapi.Error{Code: http.StatusNotFound})
	api.On("Get", mock.Anything, "source-sheet", DefaultRecordsRange).Return(nil, notFound)

	client := NewClientWithAPI(api, testConfig(), testLogger())
	_, err := client.ReadRows(context.Background())

	require.Error(t, err)
	api.AssertNumberOfCalls(t, "Get", 1)
}

func TestClient_ReadRowsRequiresSpreadsheet(t *testing.T) {
	cfg := testConfig()
	cfg.SpreadsheetID = ""

	_, err := NewClientWithAPI(&MockValuesAPI{}, cfg, nil).ReadRows(context.Background())
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestClient_WriteTabs(t *testing.T) {
	api := &MockValuesAPI{}
	tabs := []Tab{
		{Title: "Companies", Rows: [][]any{{"Company", "Total"}, {"Acme", "150.00"}}},
		{Title: "Owner's Tree"},
	}

	api.On("EnsureTabs", mock.Anything, "report-sheet", []string{"Companies", "Owner's Tree"}).Return(nil).Once()
	api.On("Clear", mock.Anything, "report-sheet", "'Companies'").Return(nil).Once()
	api.On("Update", mock.Anything, "report-sheet", "'Companies'!A1", tabs[0].Rows).Return(nil).Once()
	api.On("Clear", mock.Anything, "report-sheet", "'Owner''s Tree'").Return(nil).Once()

	client := NewClientWithAPI(api, testConfig(), testLogger())
	require.NoError(t, client.WriteTabs(context.Background(), tabs))
	api.AssertExpectations(t)
	api.AssertNotCalled(t, "Update", mock.Anything, "report-sheet", "'Owner''s Tree'!A1", mock.Anything)
}

func TestClient_WriteTabsFailure(t *testing.T) {
	api := &MockValuesAPI{}
	forbidden := classifyAPIError(&googleapi.Error{Code: http.StatusForbidden})
	api.On("EnsureTabs", mock.Anything, "report-sheet", []string{"Companies"}).Return(forbidden)

	client := NewClientWithAPI(api, testConfig(), testLogger())
	err := client.WriteTabs(context.Background(), []Tab{{Title: "Companies"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare tabs")
}

func TestClassifyAPIError(t *testing.T) {
	assert.NoError(t, classifyAPIError(nil))

	rateLimited := classifyAPIError(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, rateLimited, common.ErrRateLimit)
	assert.True(t, common.IsRetryable(rateLimited))

	assert.True(t, common.IsRetryable(classifyAPIError(&googleapi.Error{Code: http.StatusBadGateway})))
	assert.False(t, common.IsRetryable(classifyAPIError(&googleapi.Error{Code: http.StatusForbidden})))

	plain := errors.New("dial tcp: timeout")
	assert.Same(t, plain, classifyAPIError(plain))
}

func TestCallbackHandler(t *testing.T) {
	codes := make(chan string, 1)
	errs := make(chan error, 1)
	handler := callbackHandler("state-1", codes, errs)

	t.Run("rejects wrong state", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/callback?state=other&code=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, codes)
	})

	t.Run("reports missing code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-1&error=access_denied", nil))
		assert.Contains(t, rec.Body.String(), "Authentication Failed")
		err := <-errs
		assert.Contains(t, err.Error(), "access_denied")
	})

	t.Run("forwards code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/callback?state=state-1&code=abc", nil))
		assert.Contains(t, rec.Body.String(), "Authentication Successful")
		assert.Equal(t, "abc", <-codes)
	})
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, saveToken(path, token))
	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", loaded.RefreshToken)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCallbackServer(t *testing.T) {
	cs, err := startCallbackServer("127.0.0.1:0", "state-2")
	require.NoError(t, err)
	defer cs.close(slog.Default())

	assert.Contains(t, cs.redirectURL(), "http://127.0.0.1:")

	resp, err := http.Get(cs.redirectURL() + "?state=state-2&code=xyz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	code, err := cs.wait(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "xyz", code)

	_, err = cs.wait(context.Background(), time.Millisecond)
	assert.ErrorContains(t, err, "no authorization response")
}
