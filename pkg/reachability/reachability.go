// Package reachability answers whether a network path is currently available.
//
// Every probe here is best-effort: a positive answer does not guarantee that
// a subsequent request will succeed. Mobile embedders should plug in the
// platform's native reachability API through Func instead.
package reachability

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-friends-client/pkg/httpclient"
)

const (
	ModeDNS  = "dns"
	ModeHTTP = "http"
	ModeNone = "none"

	DefaultHost    = "example.com"
	DefaultTimeout = 2 * time.Second
)

// Oracle is a synchronous connectivity probe. Any failure means "not connected".
type Oracle interface {
	IsConnected() bool
}

// Func adapts a plain function to Oracle.
type Func func() bool

func (f Func) IsConnected() bool {
	if f == nil {
		return false
	}
	return f()
}

// Static returns an oracle with a fixed answer.
func Static(connected bool) Oracle {
	return Func(func() bool { return connected })
}

// Resolver is the subset of net.Resolver used by DNSProbe.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// DNSProbe reports connected when a well-known host resolves.
type DNSProbe struct {
	host     string
	timeout  time.Duration
	resolver Resolver
}

// NewDNSProbe builds a DNS probe; empty host and non-positive timeout fall back to defaults.
func NewDNSProbe(host string, timeout time.Duration, resolver Resolver) *DNSProbe {
	if strings.TrimSpace(host) == "" {
		host = DefaultHost
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &DNSProbe{host: strings.TrimSpace(host), timeout: timeout, resolver: resolver}
}

func (p *DNSProbe) IsConnected() bool {
	if p == nil || p.resolver == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	addrs, err := p.resolver.LookupHost(ctx, p.host)
	return err == nil && len(addrs) > 0
}

// HTTPProbe reports connected when the probe URL answers with any status.
type HTTPProbe struct {
	url     string
	timeout time.Duration
	client  httpclient.Client
}

func NewHTTPProbe(url string, timeout time.Duration, client httpclient.Client) *HTTPProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = httpclient.NewRestyClient(timeout)
	}
	return &HTTPProbe{url: strings.TrimSpace(url), timeout: timeout, client: client}
}

func (p *HTTPProbe) IsConnected() bool {
	if p == nil || p.client == nil || p.url == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	resp, err := p.client.Get(ctx, p.url, nil)
	return err == nil && resp != nil
}

// Options configures New.
type Options struct {
	Mode    string
	Host    string
	URL     string
	Timeout time.Duration
	Client  httpclient.Client
}

// New creates the oracle selected by opts.Mode.
func New(opts Options) (Oracle, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Mode)) {
	case "", ModeDNS:
		return NewDNSProbe(opts.Host, opts.Timeout, nil), nil
	case ModeHTTP:
		if strings.TrimSpace(opts.URL) == "" {
			return nil, fmt.Errorf("http reachability probe requires a url")
		}
		return NewHTTPProbe(opts.URL, opts.Timeout, opts.Client), nil
	case ModeNone:
		return Static(true), nil
	default:
		return nil, fmt.Errorf("unsupported reachability mode %q", opts.Mode)
	}
}
