// internal/poller/spotify/token_test.go
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/oauth2"

	"github.com/tamzrod/deck-companion/internal/status"
)

func writeTokenFile(t *testing.T, tok oauth2.Token) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "token.json")
	b, err := json.Marshal(tok)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestFileTokenSource_NotConfigured(t *testing.T) {
	_, err := NewFileTokenSource(context.Background(), Credentials{}, "/nope", nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestFileTokenSource_MissingFile(t *testing.T) {
	creds := Credentials{ClientID: "id", ClientSecret: "secret"}
	_, err := NewFileTokenSource(context.Background(), creds, filepath.Join(t.TempDir(), "missing.json"), nil)
	if err == nil {
		t.Fatalf("expected error for missing token file")
	}
}

func TestFileTokenSource_ValidTokenUsedAsIs(t *testing.T) {
	path := writeTokenFile(t, oauth2.Token{
		AccessToken:  "cached",
		TokenType:    "Bearer",
		RefreshToken: "r",
		Expiry:       time.Now().Add(time.Hour),
	})

	creds := Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     "http://127.0.0.1:1/never-called",
	}

	src, err := NewFileTokenSource(context.Background(), creds, path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	tok, err := src.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok.AccessToken != "cached" {
		t.Fatalf("got %q want cached", tok.AccessToken)
	}
}

func TestFileTokenSource_RefreshIsPersisted(t *testing.T) {
	refreshes := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes++
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type: got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	path := writeTokenFile(t, oauth2.Token{
		AccessToken:  "stale",
		TokenType:    "Bearer",
		RefreshToken: "refresh-me",
		Expiry:       time.Now().Add(-time.Hour),
	})

	creds := Credentials{ClientID: "id", ClientSecret: "secret", TokenURL: srv.URL}

	src, err := NewFileTokenSource(context.Background(), creds, path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	tok, err := src.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok.AccessToken != "fresh" {
		t.Fatalf("got %q want fresh", tok.AccessToken)
	}
	if refreshes != 1 {
		t.Fatalf("expected 1 refresh, got %d", refreshes)
	}

	saved, err := readToken(path)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if saved.AccessToken != "fresh" {
		t.Fatalf("persisted token: got %q want fresh", saved.AccessToken)
	}
	// refresh token is carried over when the server omits it
	if saved.RefreshToken != "refresh-me" {
		t.Fatalf("persisted refresh token: got %q", saved.RefreshToken)
	}
}

func expiredTokenFile(t *testing.T) string {
	t.Helper()
	return writeTokenFile(t, oauth2.Token{
		AccessToken:  "stale",
		TokenType:    "Bearer",
		RefreshToken: "refresh-me",
		Expiry:       time.Now().Add(-time.Hour),
	})
}

func TestFileTokenSource_RefreshIsBoundedByTimeout(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// hang until the client gives up
		<-r.Context().Done()
	}))
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"is_playing":true}`))
	}))
	defer apiSrv.Close()

	const timeout = 200 * time.Millisecond

	creds := Credentials{ClientID: "id", ClientSecret: "secret", TokenURL: tokenSrv.URL, Timeout: timeout}
	src, err := NewFileTokenSource(context.Background(), creds, expiredTokenFile(t), nil)
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	c, err := New(Config{
		BaseURL:    apiSrv.URL,
		HTTPClient: NewHTTPClient(context.Background(), src, timeout),
	})
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	type result struct {
		state status.PlaybackState
		err   error
	}
	done := make(chan result, 1)
	go func() {
		s, err := c.Playback(context.Background())
		done <- result{s, err}
	}()

	select {
	case r := <-done:
		if r.err == nil {
			t.Fatalf("expected refresh timeout error, got %s", r.state)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("playback blocked on a hung token endpoint")
	}
}

func TestFileTokenSource_SaveFailureIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	path := expiredTokenFile(t)

	// a directory where the temp file should go makes the write fail
	if err := os.Mkdir(path+".tmp", 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	creds := Credentials{ClientID: "id", ClientSecret: "secret", TokenURL: srv.URL}

	src, err := NewFileTokenSource(context.Background(), creds, path, zap.New(core))
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	for i := 0; i < 3; i++ {
		tok, err := src.Token()
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		if tok.AccessToken != "fresh" {
			t.Fatalf("got %q want fresh", tok.AccessToken)
		}
	}

	if n := logs.FilterMessage("token refreshed but not saved").Len(); n != 1 {
		t.Fatalf("expected one warning per rotation, got %d", n)
	}
}
