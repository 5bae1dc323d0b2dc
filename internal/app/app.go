package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-friends-client/internal/config"
	"github.com/samvad-hq/samvad-friends-client/internal/domain"
	"github.com/samvad-hq/samvad-friends-client/internal/logger"
	"github.com/samvad-hq/samvad-friends-client/pkg/httpclient"
	"github.com/samvad-hq/samvad-friends-client/pkg/reachability"
	"github.com/samvad-hq/samvad-friends-client/pkg/services"
)

// App wires configuration, transport, reachability and the friends service
// and runs a single lookup.
type App struct {
	cfg     *config.Config
	catalog *services.Catalog
	friends *services.FriendsService
	log     logger.Logger
	out     io.Writer
}

// NewApp builds the runtime from config. Results are written to out (stdout when nil).
func NewApp(cfg *config.Config, log logger.Logger, out io.Writer) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if out == nil {
		out = os.Stdout
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	endpointIDs := make([]string, 0, len(catalog.All()))
	for _, ep := range catalog.All() {
		endpointIDs = append(endpointIDs, ep.ID)
	}
	log.InfoObj("endpoint catalog loaded", "endpoints_meta", map[string]any{
		"count": len(endpointIDs),
		"ids":   endpointIDs,
		"file":  cfg.EndpointsFile,
	})

	ep, ok := catalog.Endpoint(services.EndpointFriends)
	if !ok {
		return nil, fmt.Errorf("endpoint %q is not configured", services.EndpointFriends)
	}

	transport := httpclient.NewRestyClient(cfg.RequestTimeout)
	oracle, err := reachability.New(reachability.Options{
		Mode:    cfg.ReachabilityMode,
		Host:    cfg.ReachabilityHost,
		URL:     cfg.ReachabilityURL,
		Timeout: cfg.ReachabilityTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init reachability: %w", err)
	}

	friends, err := services.NewFriendsService(ep, transport, oracle, log)
	if err != nil {
		return nil, fmt.Errorf("init friends service: %w", err)
	}
	log.InfoObj("friends service initialized", "service_config", map[string]any{
		"base_url":          ep.BaseURL,
		"path":              ep.Path,
		"method":            string(ep.Method),
		"reachability_mode": cfg.ReachabilityMode,
		"request_timeout":   cfg.RequestTimeout.String(),
	})

	return &App{
		cfg:     cfg,
		catalog: catalog,
		friends: friends,
		log:     log,
		out:     out,
	}, nil
}

func loadCatalog(cfg *config.Config) (*services.Catalog, error) {
	if strings.TrimSpace(cfg.EndpointsFile) == "" {
		return services.DefaultCatalog(cfg.APIBaseURL), nil
	}
	catalog, err := services.LoadCatalog(cfg.EndpointsFile, cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("load endpoints catalog: %w", err)
	}
	return catalog, nil
}

// Run looks up the friends of the configured user and prints them as JSON.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.friends == nil {
		return fmt.Errorf("app is not initialized")
	}
	userID := strings.TrimSpace(a.cfg.UserID)
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	start := time.Now()
	friends, err := a.friends.Friends(ctx, domain.User{ID: userID})
	if err != nil {
		a.log.ErrorObj("friends lookup failed", "lookup_error", map[string]any{
			"user_id":    userID,
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("load friends for %s: %w", userID, err)
	}
	a.log.InfoObj("friends lookup completed", "lookup_result", map[string]any{
		"user_id":    userID,
		"friends":    len(friends),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(friends); err != nil {
		return fmt.Errorf("write friends: %w", err)
	}
	return nil
}
