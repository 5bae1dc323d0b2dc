// Package services binds backend resources to typed request/response shapes.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/samvad-friends-client/pkg/webclient"
)

const (
	EndpointFriends = "friends"

	defaultFriendsPath = "/friends"
)

// catalogFile represents the structure of the endpoints configuration file.
type catalogFile struct {
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Endpoint is a single backend resource: a fixed base URL, path and verb.
type Endpoint struct {
	ID      string           `json:"id" yaml:"id"`
	BaseURL string           `json:"base_url" yaml:"base_url"`
	Path    string           `json:"path" yaml:"path"`
	Method  webclient.Method `json:"method" yaml:"method"`
}

// Catalog holds the endpoints known to the app, keyed by id.
type Catalog struct {
	mu        sync.RWMutex
	endpoints []Endpoint
	idx       map[string]Endpoint
}

// DefaultCatalog returns the built-in endpoints bound to baseURL.
func DefaultCatalog(baseURL string) *Catalog {
	ep := sanitizeEndpoint(Endpoint{
		ID:      EndpointFriends,
		BaseURL: baseURL,
		Path:    defaultFriendsPath,
		Method:  webclient.MethodGet,
	}, "")
	return &Catalog{
		endpoints: []Endpoint{ep},
		idx:       map[string]Endpoint{ep.ID: ep},
	}
}

// LoadCatalog loads endpoints from a YAML/JSON file. Entries without a
// base_url inherit fallbackBaseURL.
func LoadCatalog(path, fallbackBaseURL string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("endpoints file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open endpoints file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}

	parsed, err := parseCatalog(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Endpoints) == 0 {
		return nil, errors.New("endpoints file contains no endpoints entries")
	}

	cat := &Catalog{
		endpoints: make([]Endpoint, len(parsed.Endpoints)),
		idx:       make(map[string]Endpoint, len(parsed.Endpoints)),
	}
	for i := range parsed.Endpoints {
		ep := sanitizeEndpoint(parsed.Endpoints[i], fallbackBaseURL)
		if err := validateEndpoint(ep); err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		if _, exists := cat.idx[ep.ID]; exists {
			return nil, fmt.Errorf("duplicate endpoint id %q", ep.ID)
		}
		cat.endpoints[i] = ep
		cat.idx[ep.ID] = ep
	}

	return cat, nil
}

// All returns a copy of the loaded endpoints.
func (c *Catalog) All() []Endpoint {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Endpoint, len(c.endpoints))
	copy(out, c.endpoints)
	return out
}

// Endpoint returns the endpoint registered under id.
func (c *Catalog) Endpoint(id string) (Endpoint, bool) {
	if c == nil {
		return Endpoint{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	ep, ok := c.idx[strings.ToLower(strings.TrimSpace(id))]
	return ep, ok
}

// parseCatalog attempts to decode the endpoints file content.
func parseCatalog(data []byte, ext string) (catalogFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out catalogFile
		if err := d.fn(data, &out); err == nil {
			return out, nil
		}
	}

	return catalogFile{}, errors.New("endpoints file format not recognized (expected YAML or JSON)")
}

func sanitizeEndpoint(ep Endpoint, fallbackBaseURL string) Endpoint {
	ep.ID = strings.ToLower(strings.TrimSpace(ep.ID))
	ep.BaseURL = strings.TrimSpace(ep.BaseURL)
	ep.Path = strings.TrimSpace(ep.Path)
	ep.Method = webclient.Method(strings.ToUpper(strings.TrimSpace(string(ep.Method))))

	if ep.BaseURL == "" {
		ep.BaseURL = strings.TrimSpace(fallbackBaseURL)
	}
	if ep.Method == "" {
		ep.Method = webclient.MethodGet
	}
	return ep
}

func validateEndpoint(ep Endpoint) error {
	if ep.ID == "" {
		return errors.New("id is required")
	}
	if ep.BaseURL == "" {
		return fmt.Errorf("base_url is required for endpoint %q", ep.ID)
	}
	if ep.Path == "" {
		return fmt.Errorf("path is required for endpoint %q", ep.ID)
	}
	if !ep.Method.Valid() {
		return fmt.Errorf("unsupported method %q for endpoint %q", ep.Method, ep.ID)
	}
	return nil
}
