package services

import (
	"context"
	"fmt"

	"github.com/samvad-hq/samvad-friends-client/internal/domain"
	"github.com/samvad-hq/samvad-friends-client/pkg/httpclient"
	"github.com/samvad-hq/samvad-friends-client/pkg/jsonvalue"
	"github.com/samvad-hq/samvad-friends-client/pkg/reachability"
	"github.com/samvad-hq/samvad-friends-client/pkg/webclient"
)

const friendsUserIDParam = "user_id"

// Loader is the part of webclient.Client the services depend on.
type Loader interface {
	Load(ctx context.Context, path string, method webclient.Method, params jsonvalue.Object, onComplete webclient.Completion) *webclient.Handle
}

// FriendsCompletion receives the friends of a user or the request error.
type FriendsCompletion func(friends []domain.User, err error)

// FriendsService looks up the friends of a user on a fixed endpoint.
type FriendsService struct {
	client   Loader
	endpoint Endpoint
	log      Logger
}

// NewFriendsService creates a web client bound to ep.BaseURL and wraps it.
func NewFriendsService(ep Endpoint, transport httpclient.Client, oracle reachability.Oracle, log Logger, opts ...webclient.Option) (*FriendsService, error) {
	ep = sanitizeEndpoint(ep, "")
	if ep.Path == "" {
		ep.Path = defaultFriendsPath
	}
	if err := validateEndpoint(ep); err != nil {
		return nil, fmt.Errorf("friends endpoint: %w", err)
	}

	log = ensureLogger(log)
	clientOpts := append([]webclient.Option{webclient.WithLogger(log)}, opts...)
	client, err := webclient.New(ep.BaseURL, transport, oracle, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("friends web client: %w", err)
	}
	return newFriendsService(client, ep, log), nil
}

func newFriendsService(client Loader, ep Endpoint, log Logger) *FriendsService {
	return &FriendsService{client: client, endpoint: ep, log: ensureLogger(log)}
}

// Endpoint returns the endpoint the service is bound to.
func (s *FriendsService) Endpoint() Endpoint { return s.endpoint }

// LoadFriends requests the friends of user. Records that do not parse as
// users are dropped; the caller only sees the shorter list. Errors from the
// web client are passed through unchanged.
func (s *FriendsService) LoadFriends(ctx context.Context, user domain.User, onComplete FriendsCompletion) *webclient.Handle {
	if onComplete == nil {
		onComplete = func([]domain.User, error) {}
	}
	params := jsonvalue.Object{friendsUserIDParam: jsonvalue.StringValue(user.ID)}

	return s.client.Load(ctx, s.endpoint.Path, s.endpoint.Method, params, func(payload *jsonvalue.Value, err error) {
		if err != nil {
			onComplete(nil, err)
			return
		}
		onComplete(s.parseFriends(user.ID, payload), nil)
	})
}

// Friends is the blocking form of LoadFriends.
func (s *FriendsService) Friends(ctx context.Context, user domain.User) ([]domain.User, error) {
	var (
		friends []domain.User
		outErr  error
	)
	h := s.LoadFriends(ctx, user, func(f []domain.User, err error) {
		friends, outErr = f, err
	})
	h.Wait()
	return friends, outErr
}

func (s *FriendsService) parseFriends(userID string, payload *jsonvalue.Value) []domain.User {
	friends := []domain.User{}
	if payload == nil {
		return friends
	}

	items, ok := payload.AsArray()
	if !ok {
		s.log.DebugObj("friends payload is not a list", "friends_payload", map[string]any{
			"user_id": userID,
			"kind":    payload.Kind().String(),
		})
		return friends
	}

	for _, item := range items {
		if u, ok := domain.ParseUser(item); ok {
			friends = append(friends, u)
		}
	}

	if dropped := len(items) - len(friends); dropped > 0 {
		s.log.WarnObj("dropped malformed friend records", "friends_result", map[string]any{
			"user_id":  userID,
			"received": len(items),
			"dropped":  dropped,
		})
	}
	return friends
}
