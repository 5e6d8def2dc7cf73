package sandbox

import (
	"context"
	"net/url"
)

// ResourceAPI is the slice of the upstream client the router needs: each
// logical resource operation in its production and sandbox-proxy form.
type ResourceAPI interface {
	Listings(ctx context.Context, params url.Values) (any, error)
	Listing(ctx context.Context, id string) (any, error)
	OrdersForUser(ctx context.Context, userID string) (any, error)
	SendMessage(ctx context.Context, conversationID, userID, message string) (any, error)
	Notifications(ctx context.Context, userID string) (any, error)
	Categories(ctx context.Context) (any, error)

	ProxyListings(ctx context.Context, syntheticUserID string, params url.Values) (any, error)
	ProxyListing(ctx context.Context, syntheticUserID, id string) (any, error)
	ProxyOrders(ctx context.Context, syntheticUserID string) (any, error)
	ProxySendMessage(ctx context.Context, syntheticUserID, conversationID, message string) (any, error)
	ProxyNotifications(ctx context.Context, syntheticUserID string) (any, error)
	ProxyCategories(ctx context.Context, syntheticUserID string) (any, error)
}

// Router routes each logical resource operation to the production endpoint or
// the sandbox proxy, depending on the persisted session. Sandbox results are
// tagged with sandbox_mode: true. Transport errors propagate to the caller
// unmodified.
type Router struct {
	store *Store
	api   ResourceAPI
}

// NewRouter creates a new Router on top of the session store.
func NewRouter(store *Store, api ResourceAPI) *Router {
	return &Router{store: store, api: api}
}

// tagSandboxMode marks a decoded JSON result as produced in sandbox mode:
// objects get a top-level key, arrays get the key on every element.
func tagSandboxMode(result any) any {
	switch v := result.(type) {
	case map[string]any:
		v["sandbox_mode"] = true
		return v
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				m["sandbox_mode"] = true
			}
		}
		return v
	}
	return result
}

// GetListings returns listings for the caller-supplied query parameters.
func (r *Router) GetListings(ctx context.Context, params url.Values) (any, error) {
	session := r.store.Session()
	if session == nil {
		return r.api.Listings(ctx, params)
	}
	result, err := r.api.ProxyListings(ctx, session.SyntheticUserID, params)
	if err != nil {
		return nil, err
	}
	return tagSandboxMode(result), nil
}

// GetListing returns a single listing.
func (r *Router) GetListing(ctx context.Context, id string) (any, error) {
	session := r.store.Session()
	if session == nil {
		return r.api.Listing(ctx, id)
	}
	result, err := r.api.ProxyListing(ctx, session.SyntheticUserID, id)
	if err != nil {
		return nil, err
	}
	return tagSandboxMode(result), nil
}

// GetMyOrders returns the caller's orders. In sandbox mode the synthetic user
// id replaces the authenticated one; a session without a synthetic user id
// yields an empty collection rather than an error.
func (r *Router) GetMyOrders(ctx context.Context, userID string) (any, error) {
	session := r.store.Session()
	if session == nil {
		return r.api.OrdersForUser(ctx, userID)
	}
	if session.SyntheticUserID == "" {
		return []any{}, nil
	}
	result, err := r.api.ProxyOrders(ctx, session.SyntheticUserID)
	if err != nil {
		return nil, err
	}
	return tagSandboxMode(result), nil
}

// SendMessage posts a message into a conversation.
func (r *Router) SendMessage(ctx context.Context, conversationID, userID, message string) (any, error) {
	session := r.store.Session()
	if session == nil {
		return r.api.SendMessage(ctx, conversationID, userID, message)
	}
	if session.SyntheticUserID == "" {
		return []any{}, nil
	}
	result, err := r.api.ProxySendMessage(ctx, session.SyntheticUserID, conversationID, message)
	if err != nil {
		return nil, err
	}
	return tagSandboxMode(result), nil
}

// GetNotifications returns the caller's notification inbox.
func (r *Router) GetNotifications(ctx context.Context, userID string) (any, error) {
	session := r.store.Session()
	if session == nil {
		return r.api.Notifications(ctx, userID)
	}
	if session.SyntheticUserID == "" {
		return []any{}, nil
	}
	result, err := r.api.ProxyNotifications(ctx, session.SyntheticUserID)
	if err != nil {
		return nil, err
	}
	return tagSandboxMode(result), nil
}

// GetCategories returns the category tree.
func (r *Router) GetCategories(ctx context.Context) (any, error) {
	session := r.store.Session()
	if session == nil {
		return r.api.Categories(ctx)
	}
	result, err := r.api.ProxyCategories(ctx, session.SyntheticUserID)
	if err != nil {
		return nil, err
	}
	return tagSandboxMode(result), nil
}
