package sheets

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// DefaultCallbackAddr is where the interactive flow listens for Google's redirect.
const DefaultCallbackAddr = "localhost:8080"

// AuthTimeout bounds how long the interactive flow waits for the browser.
const AuthTimeout = 5 * time.Minute

// OAuth errors.
var (
	ErrNoAuthCode    = errors.New("no authorization code received")
	ErrStateMismatch = errors.New("oauth state mismatch")
	ErrAuthTimeout   = errors.New("authentication timeout")
)

// OAuth2Config holds OAuth2 configuration.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	CallbackAddr string
	// Prompt is shown the consent URL. Nil logs it.
	Prompt func(authURL string)
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

// AuthenticateOAuth2Interactive runs the consent flow in the user's browser
// and saves the resulting token to TokenFile when one is set.
func AuthenticateOAuth2Interactive(ctx context.Context, config OAuth2Config) (*oauth2.Token, error) {
	addr := config.CallbackAddr
	if addr == "" {
		addr = DefaultCallbackAddr
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	state, err := newState()
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	codes := make(chan string, 1)
	errs := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle("/callback", callbackHandler(state, codes, errs))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			select {
			case errs <- fmt.Errorf("callback server: %w", serveErr):
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			slog.Warn("Error shutting down callback server", "error", shutdownErr)
		}
	}()

	oauthConfig := config.oauth("http://" + listener.Addr().String() + "/callback")
	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	if config.Prompt != nil {
		config.Prompt(authURL)
	} else {
		slog.Info("Google Sheets authentication required")
		slog.Info("Visit this URL to authenticate", "url", authURL)
	}

	var code string
	select {
	case code = <-codes:
		slog.Debug("Received authorization code")
	case err := <-errs:
		return nil, err
	case <-time.After(AuthTimeout):
		return nil, fmt.Errorf("%w: no response within %s", ErrAuthTimeout, AuthTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if config.TokenFile != "" {
		if err := saveToken(config.TokenFile, token); err != nil {
			return token, err
		}
		slog.Info("Token saved", "file", config.TokenFile)
	}

	return token, nil
}

// callbackHandler receives Google's redirect and hands the code over once.
func callbackHandler(state string, codes chan<- string, errs chan<- error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var err error
		switch {
		case q.Get("state") != state:
			err = ErrStateMismatch
		case q.Get("error") != "":
			err = fmt.Errorf("authorization denied: %s", q.Get("error"))
		case q.Get("code") == "":
			err = ErrNoAuthCode
		}

		if err != nil {
			select {
			case errs <- err:
			default:
			}
			w.WriteHeader(http.StatusBadRequest)
			_, _ = fmt.Fprintf(w, "<html><body><h1>Authentication failed</h1><p>%s</p></body></html>", html.EscapeString(err.Error()))
			return
		}

		select {
		case codes <- q.Get("code"):
		default:
		}
		_, _ = fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// LoadToken loads a token from file.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return token, nil
}

// saveToken writes a token readable only by the current user.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

// TokenSource returns credentials for the configured auth method: a service
// account key, or the OAuth2 client with its refresh token.
func TokenSource(ctx context.Context, config Config) (oauth2.TokenSource, error) {
	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		return jwtConfig.TokenSource(ctx), nil
	}

	if !config.HasOAuth() {
		return nil, ErrNoAuth
	}
	client := OAuth2Config{ClientID: config.ClientID, ClientSecret: config.ClientSecret}.oauth("")
	return client.TokenSource(ctx, &oauth2.Token{RefreshToken: config.RefreshToken}), nil
}
