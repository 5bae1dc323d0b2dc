package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/samvad-friends-client/internal/config"
	"github.com/samvad-hq/samvad-friends-client/pkg/webclient"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AppName:             "test",
		LogLevel:            "debug",
		APIBaseURL:          baseURL,
		UserID:              "u1",
		RequestTimeout:      2 * time.Second,
		ReachabilityMode:    "none",
		ReachabilityTimeout: time.Second,
	}
}

func friendsServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/friends" && r.URL.Path != "/v2/friends" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("user_id") != "u1" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"not allowed"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"f1","name":"Asha"},{"email":"broken"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAppRunPrintsFriends(t *testing.T) {
	srv := friendsServer(t)

	var out bytes.Buffer
	a, err := NewApp(testConfig(srv.URL), nil, &out)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))
	assert.JSONEq(t, `[{"id":"f1","name":"Asha"}]`, out.String())
}

func TestAppRunWithEndpointsFile(t *testing.T) {
	srv := friendsServer(t)

	file := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(file, []byte("endpoints:\n  - id: friends\n    path: /v2/friends\n"), 0o644))

	cfg := testConfig(srv.URL)
	cfg.EndpointsFile = file

	var out bytes.Buffer
	a, err := NewApp(cfg, nil, &out)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), `"f1"`)
}

func TestAppRunSurfacesServiceError(t *testing.T) {
	srv := friendsServer(t)

	cfg := testConfig(srv.URL)
	cfg.UserID = "u2"

	a, err := NewApp(cfg, nil, &bytes.Buffer{})
	require.NoError(t, err)

	err = a.Run(context.Background())
	assert.True(t, errors.Is(err, webclient.Custom("not allowed")))
}

func TestAppRunRequiresUser(t *testing.T) {
	cfg := testConfig("https://api.example.com")
	cfg.UserID = " "

	a, err := NewApp(cfg, nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Error(t, a.Run(context.Background()))
}

func TestNewAppValidation(t *testing.T) {
	_, err := NewApp(nil, nil, nil)
	assert.Error(t, err)

	cfg := testConfig("https://api.example.com")
	cfg.EndpointsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewApp(cfg, nil, nil)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "endpoints.yaml")
	require.NoError(t, os.WriteFile(file, []byte("endpoints:\n  - id: profile\n    path: /me\n"), 0o644))
	cfg = testConfig("https://api.example.com")
	cfg.EndpointsFile = file
	_, err = NewApp(cfg, nil, nil)
	assert.Error(t, err, "friends endpoint missing from catalog")

	cfg = testConfig("https://api.example.com")
	cfg.ReachabilityMode = "http"
	_, err = NewApp(cfg, nil, nil)
	assert.Error(t, err, "http probe without url")
}
