// Package webclient gates requests on reachability, builds them, dispatches
// them through an injected transport and classifies the outcome into a JSON
// payload or a *ServiceError.
package webclient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsteenb2/errors"

	"github.com/samvad-hq/samvad-friends-client/pkg/httpclient"
	"github.com/samvad-hq/samvad-friends-client/pkg/jsonvalue"
	"github.com/samvad-hq/samvad-friends-client/pkg/reachability"
)

var errNoResponse = errors.Kind("transport returned no response")

// Completion receives the outcome of a Load. Exactly one of payload and err
// is meaningful: on success err is nil and payload may still be nil when the
// body did not decode; on failure payload is nil and err is a *ServiceError.
type Completion func(payload *jsonvalue.Value, err error)

// Interceptor rewrites a request right before dispatch, e.g. to add credentials.
type Interceptor func(httpclient.Request) httpclient.Request

// Option configures a Client.
type Option func(*Client)

// WithInterceptor appends interceptors; they run in the order given.
func WithInterceptor(fns ...Interceptor) Option {
	return func(c *Client) {
		for _, fn := range fns {
			if fn != nil {
				c.interceptors = append(c.interceptors, fn)
			}
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// Client is safe for concurrent use; calls to Load share no mutable state.
type Client struct {
	builder      *RequestBuilder
	transport    httpclient.Client
	oracle       reachability.Oracle
	interceptors []Interceptor
	log          Logger
}

// New builds a client bound to baseURL. A nil oracle falls back to the
// default DNS probe.
func New(baseURL string, transport httpclient.Client, oracle reachability.Oracle, opts ...Option) (*Client, error) {
	builder, err := NewRequestBuilder(baseURL)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, errors.Wrap(ErrMissingTransport)
	}
	if oracle == nil {
		oracle = reachability.NewDNSProbe("", 0, nil)
	}

	c := &Client{
		builder:   builder,
		transport: transport,
		oracle:    oracle,
		log:       noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string { return c.builder.BaseURL() }

// Handle controls an in-flight request.
type Handle struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// ID is the correlation id used in log entries for this request.
func (h *Handle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

// Cancel aborts the request through its context. It is a no-op once the
// request has completed.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.cancel()
}

// Done is closed after the completion callback has returned.
func (h *Handle) Done() <-chan struct{} {
	if h == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return h.done
}

// Wait blocks until the completion callback has returned.
func (h *Handle) Wait() {
	if h == nil {
		return
	}
	<-h.done
}

// Load issues a single request. When the oracle reports no connectivity, or
// the request cannot be built, onComplete runs synchronously and Load returns
// nil. Otherwise the request is dispatched on its own goroutine, onComplete
// runs there exactly once, and the returned Handle can cancel it.
func (c *Client) Load(ctx context.Context, path string, method Method, params jsonvalue.Object, onComplete Completion) *Handle {
	if onComplete == nil {
		onComplete = func(*jsonvalue.Value, error) {}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if !c.oracle.IsConnected() {
		c.log.DebugObj("request skipped", "request", map[string]any{
			"method": string(method),
			"path":   path,
			"reason": ErrorNoConnectivity.String(),
		})
		onComplete(nil, NoConnectivity())
		return nil
	}

	req, err := c.builder.Build(path, method, params)
	if err != nil {
		c.log.WarnObj("request build failed", "request", map[string]any{
			"method": string(method),
			"path":   path,
			"error":  err.Error(),
		})
		onComplete(nil, otherWithCause(err))
		return nil
	}
	for _, fn := range c.interceptors {
		req = fn(req)
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{id: uuid.NewString(), cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer cancel()
		payload, err := c.dispatch(ctx, h.id, path, req)
		onComplete(payload, err)
	}()

	return h
}

// Fetch is the blocking form of Load.
func (c *Client) Fetch(ctx context.Context, path string, method Method, params jsonvalue.Object) (*jsonvalue.Value, error) {
	var (
		payload *jsonvalue.Value
		outErr  error
	)
	h := c.Load(ctx, path, method, params, func(p *jsonvalue.Value, err error) {
		payload, outErr = p, err
	})
	h.Wait()
	return payload, outErr
}

func (c *Client) dispatch(ctx context.Context, id, path string, req httpclient.Request) (*jsonvalue.Value, error) {
	start := time.Now()
	c.log.DebugObj("request dispatched", "request", map[string]any{
		"request_id": id,
		"method":     req.Method,
		"path":       path,
	})

	resp, err := c.transport.Do(ctx, req)
	if err == nil && resp == nil {
		err = errors.Wrap(errNoResponse)
	}
	if err != nil {
		c.log.DebugObj("request failed", "request", map[string]any{
			"request_id": id,
			"elapsed_ms": time.Since(start).Milliseconds(),
			"error":      err.Error(),
		})
		return nil, TransportFailure(err)
	}

	var payload *jsonvalue.Value
	if v, ok := jsonvalue.Decode(resp.Body()); ok {
		payload = &v
	}

	status := resp.StatusCode()
	c.log.DebugObj("request completed", "request", map[string]any{
		"request_id": id,
		"status":     status,
		"decoded":    payload != nil,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if status >= 200 && status < 300 {
		return payload, nil
	}
	if payload == nil {
		return nil, Other()
	}
	return nil, ErrorFromJSON(*payload)
}
