package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/google/uuid"
)

// Client is the REST client for the marketplace backend. Every call carries a
// generated X-Request-ID and returns the decoded JSON body; non-2xx responses
// become errors. No call is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("upstream %s %s returned %d: %s", method, path, resp.StatusCode, bodySnippet(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode upstream response: %w", err)
		}
	}
	return nil
}

// getAny fetches path and returns the decoded body as-is (object or array).
func (c *Client) getAny(ctx context.Context, path string, query url.Values) (any, error) {
	var out any
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func bodySnippet(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

// --- Sandbox session endpoints ---

type startSessionRequest struct {
	AdminID string `json:"admin_id"`
	Role    string `json:"role"`
}

type sessionResponse struct {
	Session *models.SandboxSession `json:"session"`
}

// StartSession starts a sandbox session for the admin in the given role.
func (c *Client) StartSession(ctx context.Context, adminID, role string) (*models.SandboxSession, error) {
	var out sessionResponse
	err := c.doJSON(ctx, http.MethodPost, "/sandbox/session/start", nil, startSessionRequest{AdminID: adminID, Role: role}, &out)
	if err != nil {
		return nil, err
	}
	if out.Session == nil {
		return nil, fmt.Errorf("upstream start session returned no session")
	}
	return out.Session, nil
}

// EndSession ends the sandbox session.
func (c *Client) EndSession(ctx context.Context, sessionID, adminID string) error {
	body := map[string]string{"admin_id": adminID}
	return c.doJSON(ctx, http.MethodPost, "/sandbox/session/"+url.PathEscape(sessionID)+"/end", nil, body, nil)
}

// SwitchRole asks the backend to switch the session role and returns its
// success flag.
func (c *Client) SwitchRole(ctx context.Context, sessionID, adminID, newRole string) (bool, error) {
	body := map[string]string{"admin_id": adminID, "new_role": newRole}
	var out struct {
		Success bool `json:"success"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/sandbox/session/"+url.PathEscape(sessionID)+"/switch-role", nil, body, &out)
	if err != nil {
		return false, err
	}
	return out.Success, nil
}

// ActiveSession looks up the active sandbox session for the admin, if any.
func (c *Client) ActiveSession(ctx context.Context, adminID string) (bool, *models.SandboxSession, error) {
	var out struct {
		Active  bool                   `json:"active"`
		Session *models.SandboxSession `json:"session"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/sandbox/session/active/"+url.PathEscape(adminID), nil, nil, &out)
	if err != nil {
		return false, nil, err
	}
	return out.Active, out.Session, nil
}

// --- Production resource endpoints ---

// Listings fetches listings with the caller-supplied query parameters.
func (c *Client) Listings(ctx context.Context, params url.Values) (any, error) {
	return c.getAny(ctx, "/api/listings", params)
}

// Listing fetches a single listing.
func (c *Client) Listing(ctx context.Context, id string) (any, error) {
	return c.getAny(ctx, "/api/listings/"+url.PathEscape(id), nil)
}

// OrdersForUser fetches the orders of the given user.
func (c *Client) OrdersForUser(ctx context.Context, userID string) (any, error) {
	return c.getAny(ctx, "/api/orders", url.Values{"user_id": {userID}})
}

// SendMessage posts a message into a conversation on behalf of the user.
func (c *Client) SendMessage(ctx context.Context, conversationID, userID, message string) (any, error) {
	body := map[string]string{"user_id": userID, "message": message}
	var out any
	err := c.doJSON(ctx, http.MethodPost, "/api/conversations/"+url.PathEscape(conversationID)+"/messages", nil, body, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Notifications fetches the notification inbox of the given user.
func (c *Client) Notifications(ctx context.Context, userID string) (any, error) {
	return c.getAny(ctx, "/api/notifications", url.Values{"user_id": {userID}})
}

// Categories fetches the category tree.
func (c *Client) Categories(ctx context.Context) (any, error) {
	return c.getAny(ctx, "/api/categories", nil)
}

// --- Sandbox proxy mirrors ---
// Same logical operations namespaced under /sandbox/proxy, parameterized by
// the session's synthetic user id instead of the authenticated user.

func withSyntheticUser(params url.Values, syntheticUserID string) url.Values {
	merged := url.Values{}
	for k, vs := range params {
		merged[k] = vs
	}
	merged.Set("user_id", syntheticUserID)
	return merged
}

// ProxyListings fetches listings through the sandbox proxy.
func (c *Client) ProxyListings(ctx context.Context, syntheticUserID string, params url.Values) (any, error) {
	return c.getAny(ctx, "/sandbox/proxy/listings", withSyntheticUser(params, syntheticUserID))
}

// ProxyListing fetches a single listing through the sandbox proxy.
func (c *Client) ProxyListing(ctx context.Context, syntheticUserID, id string) (any, error) {
	return c.getAny(ctx, "/sandbox/proxy/listings/"+url.PathEscape(id), withSyntheticUser(nil, syntheticUserID))
}

// ProxyOrders fetches the synthetic user's orders through the sandbox proxy.
func (c *Client) ProxyOrders(ctx context.Context, syntheticUserID string) (any, error) {
	return c.getAny(ctx, "/sandbox/proxy/orders", withSyntheticUser(nil, syntheticUserID))
}

// ProxySendMessage posts a message through the sandbox proxy as the synthetic user.
func (c *Client) ProxySendMessage(ctx context.Context, syntheticUserID, conversationID, message string) (any, error) {
	body := map[string]string{"user_id": syntheticUserID, "message": message}
	var out any
	err := c.doJSON(ctx, http.MethodPost, "/sandbox/proxy/conversations/"+url.PathEscape(conversationID)+"/messages", nil, body, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProxyNotifications fetches the synthetic user's notifications through the sandbox proxy.
func (c *Client) ProxyNotifications(ctx context.Context, syntheticUserID string) (any, error) {
	return c.getAny(ctx, "/sandbox/proxy/notifications", withSyntheticUser(nil, syntheticUserID))
}

// ProxyCategories fetches the category tree through the sandbox proxy.
func (c *Client) ProxyCategories(ctx context.Context, syntheticUserID string) (any, error) {
	return c.getAny(ctx, "/sandbox/proxy/categories", withSyntheticUser(nil, syntheticUserID))
}

// --- Feature settings and tracking endpoints ---

// FeatureSettings fetches the flat feature-settings record.
func (c *Client) FeatureSettings(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/feature-settings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TrackClick records a notification click. Callers treat it as best-effort.
func (c *Client) TrackClick(ctx context.Context, notificationID string) error {
	return c.doJSON(ctx, http.MethodPost, "/smart-notifications/track/click/"+url.PathEscape(notificationID), nil, nil, nil)
}

type trackConversionRequest struct {
	ConversionType  string  `json:"conversion_type"`
	ConversionValue float64 `json:"conversion_value,omitempty"`
	EntityID        string  `json:"entity_id,omitempty"`
}

// TrackConversion records a notification conversion.
func (c *Client) TrackConversion(ctx context.Context, notificationID, conversionType string, value float64, entityID string) error {
	body := trackConversionRequest{ConversionType: conversionType, ConversionValue: value, EntityID: entityID}
	return c.doJSON(ctx, http.MethodPost, "/smart-notifications/track/conversion/"+url.PathEscape(notificationID), nil, body, nil)
}
