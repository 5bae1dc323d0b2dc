package webclient

import (
	"net/url"
	"strings"

	"github.com/jsteenb2/errors"

	"github.com/samvad-hq/samvad-friends-client/pkg/httpclient"
	"github.com/samvad-hq/samvad-friends-client/pkg/jsonvalue"
)

var (
	ErrInvalidBaseURL    = errors.Kind("invalid base url")
	ErrUnsupportedMethod = errors.Kind("unsupported http method")
	ErrMissingTransport  = errors.Kind("transport is required")
)

// Method is the closed set of verbs the client speaks.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

const contentTypeJSON = "application/json"

// encodesQuery reports whether params travel as query items rather than a body.
func (m Method) encodesQuery() bool { return m == MethodGet || m == MethodDelete }

func (m Method) encodesBody() bool { return m == MethodPost || m == MethodPut }

// Valid reports whether m is one of the supported verbs.
func (m Method) Valid() bool { return m.encodesQuery() || m.encodesBody() }

// RequestBuilder turns (path, method, params) into request descriptors
// against a fixed base URL.
type RequestBuilder struct {
	base *url.URL
}

// NewRequestBuilder validates baseURL; it must carry a scheme and a host.
func NewRequestBuilder(baseURL string) (*RequestBuilder, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, errors.Wrap(ErrInvalidBaseURL, "base url is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidBaseURL, "parse base url", errors.KVs("base_url", raw, "cause", err.Error()))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Wrap(ErrInvalidBaseURL, "base url needs scheme and host", errors.KVs("base_url", raw))
	}

	return &RequestBuilder{base: u}, nil
}

// BaseURL returns the validated base URL.
func (b *RequestBuilder) BaseURL() string { return b.base.String() }

// Build produces the request descriptor. path is appended to the base path
// verbatim. GET and DELETE carry params as query items using each value's
// default string form; POST and PUT carry them as a JSON body.
func (b *RequestBuilder) Build(path string, method Method, params jsonvalue.Object) (httpclient.Request, error) {
	if !method.Valid() {
		return httpclient.Request{}, errors.Wrap(ErrUnsupportedMethod, errors.KVs("method", string(method)))
	}

	u := *b.base
	u.Path = b.base.Path + path
	u.RawPath = ""

	req := httpclient.Request{
		Method: string(method),
		Headers: map[string]string{
			"Accept":       contentTypeJSON,
			"Content-Type": contentTypeJSON,
		},
	}

	switch {
	case method.encodesQuery():
		if len(params) > 0 {
			q := make(url.Values, len(params))
			for k, v := range params {
				q.Add(k, v.String())
			}
			u.RawQuery = q.Encode()
		}
	case method.encodesBody():
		body, err := jsonvalue.Encode(jsonvalue.ObjectValue(params))
		if err != nil {
			return httpclient.Request{}, errors.Wrap(err, "encode request body")
		}
		req.Body = body
	}

	req.URL = u.String()
	return req, nil
}
