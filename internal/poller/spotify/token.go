// internal/poller/spotify/token.go
package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	spotifyauth "golang.org/x/oauth2/spotify"
)

// ScopePlaybackState is the only scope the companion needs.
const ScopePlaybackState = "user-read-playback-state"

// TokenSource supplies bearer tokens. Tests substitute oauth2.StaticTokenSource.
type TokenSource = oauth2.TokenSource

// Credentials describe the registered application.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// TokenURL overrides the accounts endpoint (tests).
	TokenURL string

	// Timeout bounds each refresh request. Zero means no bound.
	Timeout time.Duration
}

// NewFileTokenSource loads a cached token from path and returns a source that
// refreshes through the accounts endpoint and writes every new token back.
// The initial token is obtained outside this program.
func NewFileTokenSource(ctx context.Context, creds Credentials, path string, logger *zap.Logger) (TokenSource, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	if path == "" {
		return nil, errors.Wrap(ErrNotConfigured, "token file")
	}

	tok, err := readToken(path)
	if err != nil {
		return nil, err
	}

	endpoint := spotifyauth.Endpoint
	if creds.TokenURL != "" {
		endpoint.TokenURL = creds.TokenURL
	}

	oc := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  creds.RedirectURI,
		Scopes:       []string{ScopePlaybackState},
	}

	// Refresh runs before the API request and outside its deadline.
	if creds.Timeout > 0 {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: creds.Timeout})
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &persistingSource{
		src:    oc.TokenSource(ctx, tok),
		path:   path,
		logger: logger,
		last:   tok.AccessToken,
	}, nil
}

// persistingSource saves a token whenever the underlying source rotates it.
type persistingSource struct {
	src    oauth2.TokenSource
	path   string
	logger *zap.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccessToken == s.last {
		return tok, nil
	}
	s.last = tok.AccessToken

	// still usable for this session; next start refreshes again
	if err := writeToken(s.path, tok); err != nil {
		s.logger.Warn("token refreshed but not saved",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}
	return tok, nil
}

func readToken(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "spotify: read token file")
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, errors.Wrap(err, "spotify: decode token file")
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, errors.New("spotify: token file holds neither access nor refresh token")
	}
	return &tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	b, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return errors.Wrap(err, "spotify: encode token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "spotify: token dir")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return errors.Wrap(err, "spotify: write token")
	}
	return errors.Wrap(os.Rename(tmp, path), "spotify: replace token")
}

func newOAuthClient(ctx context.Context, src TokenSource, timeout time.Duration) *http.Client {
	base := http.DefaultTransport
	if hc, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && hc != nil && hc.Transport != nil {
		base = hc.Transport
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, src),
			Base:   base,
		},
	}
}
