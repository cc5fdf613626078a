// internal/poller/spotify/client.go
package spotify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tamzrod/deck-companion/internal/status"
)

const playerPath = "/v1/me/player"

// ErrNotConfigured is returned when credentials are missing or are the
// shipped placeholder. The playback signal stays disabled for the session.
var ErrNotConfigured = errors.New("spotify: not configured")

// Config for ONE playback client.
type Config struct {
	BaseURL string

	// HTTPClient must attach authorization. See NewHTTPClient.
	HTTPClient *http.Client
}

// Client queries the current playback state. One request per call.
type Client struct {
	url  string
	http *http.Client
}

// New builds a client. It performs no network I/O.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("spotify: base url required")
	}
	if cfg.HTTPClient == nil {
		return nil, errors.New("spotify: http client required")
	}
	return &Client{
		url:  strings.TrimRight(cfg.BaseURL, "/") + playerPath,
		http: cfg.HTTPClient,
	}, nil
}

// NewHTTPClient wraps a token source into a bearer-authorized client.
func NewHTTPClient(ctx context.Context, src TokenSource, timeout time.Duration) *http.Client {
	return newOAuthClient(ctx, src, timeout)
}

type playerResponse struct {
	IsPlaying bool `json:"is_playing"`
}

// Playback performs exactly one GET against the player endpoint.
//
//	204 / empty body      -> Stopped
//	200 is_playing=true   -> Playing
//	200 is_playing=false  -> Paused
//
// Anything else is an error.
func (c *Client) Playback(ctx context.Context) (status.PlaybackState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, errors.Wrap(err, "spotify: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "spotify: request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return status.PlaybackStopped, nil
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return 0, errors.Errorf("spotify: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, errors.Wrap(err, "spotify: read body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return status.PlaybackStopped, nil
	}

	var pr playerResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return 0, errors.Wrap(err, "spotify: decode player")
	}

	if pr.IsPlaying {
		return status.PlaybackPlaying, nil
	}
	return status.PlaybackPaused, nil
}
