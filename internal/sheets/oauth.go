package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// OAuth2Config holds OAuth2 configuration for the interactive flow.
type OAuth2Config struct {
	OpenBrowser  func(url string)
	Logger       *slog.Logger
	ClientID     string
	ClientSecret string
	TokenFile    string        // where to save the token, skipped when empty
	ListenAddr   string        // callback listener, default localhost:8080
	Timeout      time.Duration // default 5 minutes
}

func (c OAuth2Config) oauth(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

// callbackServer receives the authorization code on /callback.
type callbackServer struct {
	server   *http.Server
	listener net.Listener
	codes    chan string
	errs     chan error
}

func startCallbackServer(addr, state string) (*callbackServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	cs := &callbackServer{
		listener: listener,
		codes:    make(chan string, 1),
		errs:     make(chan error, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", callbackHandler(state, cs.codes, cs.errs))
	cs.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := cs.server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			select {
			case cs.errs <- fmt.Errorf("callback server failed: %w", err):
			default:
			}
		}
	}()
	return cs, nil
}

func (cs *callbackServer) redirectURL() string {
	return "http://" + cs.listener.Addr().String() + "/callback"
}

// wait blocks until a code arrives, the handler reports an error, ctx ends or timeout passes.
func (cs *callbackServer) wait(ctx context.Context, timeout time.Duration) (string, error) {
	select {
	case code := <-cs.codes:
		return code, nil
	case err := <-cs.errs:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(timeout):
		return "", fmt.Errorf("no authorization response within %s", timeout)
	}
}

func (cs *callbackServer) close(logger *slog.Logger) {
	if err := cs.server.Shutdown(context.Background()); err != nil {
		logger.Warn("Error shutting down callback server", "error", err)
	}
}

// AuthenticateOAuth2Interactive runs the browser consent flow and returns a token
// carrying a refresh token.
func AuthenticateOAuth2Interactive(ctx context.Context, config OAuth2Config) (*oauth2.Token, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := config.ListenAddr
	if addr == "" {
		addr = "localhost:8080"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	state := uuid.NewString()
	cs, err := startCallbackServer(addr, state)
	if err != nil {
		return nil, err
	}
	defer cs.close(logger)

	oauthConfig := config.oauth(cs.redirectURL())
	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	logger.Info("Open this URL to authorize Google Sheets access", "url", authURL)
	if config.OpenBrowser != nil {
		config.OpenBrowser(authURL)
	}

	code, err := cs.wait(ctx, timeout)
	if err != nil {
		return nil, fmt.Errorf("authorization not completed: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if config.TokenFile != "" {
		if err := saveToken(config.TokenFile, token); err != nil {
			logger.Warn("Failed to save token", "file", config.TokenFile, "error", err)
		} else {
			logger.Info("Saved token", "file", config.TokenFile)
		}
	}

	return token, nil
}

func callbackHandler(state string, codes chan<- string, errs chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		code := query.Get("code")
		if code == "" {
			select {
			case errs <- fmt.Errorf("no authorization code received: %s", query.Get("error")):
			default:
			}
			_, _ = fmt.Fprint(w, "<html><body><h1>Authentication Failed</h1><p>No authorization code received. Run supply auth sheets again.</p></body></html>")
			return
		}

		select {
		case codes <- code:
		default:
		}
		_, _ = fmt.Fprint(w, "<html><body><h1>Authentication Successful!</h1><p>You can close this window and return to supply.</p></body></html>")
	}
}

// LoadToken reads a token written by AuthenticateOAuth2Interactive.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	data, err := os.ReadFile(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("failed to decode token %s: %w", tokenFile, err)
	}
	return token, nil
}

// saveToken writes token as JSON readable only by the owner.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
