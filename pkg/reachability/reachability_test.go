package reachability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	addrs []string
	err   error
	host  string
}

func (s *stubResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	s.host = host
	return s.addrs, s.err
}

func TestDNSProbe(t *testing.T) {
	ok := &stubResolver{addrs: []string{"93.184.216.34"}}
	probe := NewDNSProbe("", 0, ok)
	assert.True(t, probe.IsConnected())
	assert.Equal(t, DefaultHost, ok.host)

	failing := &stubResolver{err: errors.New("no such host")}
	assert.False(t, NewDNSProbe("api.example.com", time.Second, failing).IsConnected())

	empty := &stubResolver{}
	assert.False(t, NewDNSProbe("api.example.com", time.Second, empty).IsConnected())
}

func TestHTTPProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	assert.True(t, NewHTTPProbe(srv.URL, time.Second, nil).IsConnected(), "any status counts as reachable")

	srv.Close()
	assert.False(t, NewHTTPProbe(srv.URL, time.Second, nil).IsConnected())
	assert.False(t, NewHTTPProbe("", time.Second, nil).IsConnected())
}

func TestStaticAndFunc(t *testing.T) {
	assert.True(t, Static(true).IsConnected())
	assert.False(t, Static(false).IsConnected())

	var nilFunc Func
	assert.False(t, nilFunc.IsConnected())
}

func TestNew(t *testing.T) {
	o, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &DNSProbe{}, o)

	o, err = New(Options{Mode: "HTTP", URL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPProbe{}, o)

	o, err = New(Options{Mode: ModeNone})
	require.NoError(t, err)
	assert.True(t, o.IsConnected())

	_, err = New(Options{Mode: ModeHTTP})
	assert.Error(t, err)

	_, err = New(Options{Mode: "carrier-pigeon"})
	assert.Error(t, err)
}
