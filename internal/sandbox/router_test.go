package sandbox

import (
	"context"
	"net/url"
	"testing"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResourceAPI struct {
	prodCalls  int
	proxyCalls int
	result     any
	lastUser   string
}

func (f *fakeResourceAPI) prod(result any) (any, error) {
	f.prodCalls++
	return result, nil
}

func (f *fakeResourceAPI) proxy(syntheticUserID string, result any) (any, error) {
	f.proxyCalls++
	f.lastUser = syntheticUserID
	return result, nil
}

func (f *fakeResourceAPI) Listings(ctx context.Context, params url.Values) (any, error) {
	return f.prod(f.result)
}
func (f *fakeResourceAPI) Listing(ctx context.Context, id string) (any, error) {
	return f.prod(f.result)
}
func (f *fakeResourceAPI) OrdersForUser(ctx context.Context, userID string) (any, error) {
	f.lastUser = userID
	return f.prod(f.result)
}
func (f *fakeResourceAPI) SendMessage(ctx context.Context, conversationID, userID, message string) (any, error) {
	f.lastUser = userID
	return f.prod(f.result)
}
func (f *fakeResourceAPI) Notifications(ctx context.Context, userID string) (any, error) {
	f.lastUser = userID
	return f.prod(f.result)
}
func (f *fakeResourceAPI) Categories(ctx context.Context) (any, error) {
	return f.prod(f.result)
}

func (f *fakeResourceAPI) ProxyListings(ctx context.Context, syntheticUserID string, params url.Values) (any, error) {
	return f.proxy(syntheticUserID, f.result)
}
func (f *fakeResourceAPI) ProxyListing(ctx context.Context, syntheticUserID, id string) (any, error) {
	return f.proxy(syntheticUserID, f.result)
}
func (f *fakeResourceAPI) ProxyOrders(ctx context.Context, syntheticUserID string) (any, error) {
	return f.proxy(syntheticUserID, f.result)
}
func (f *fakeResourceAPI) ProxySendMessage(ctx context.Context, syntheticUserID, conversationID, message string) (any, error) {
	return f.proxy(syntheticUserID, f.result)
}
func (f *fakeResourceAPI) ProxyNotifications(ctx context.Context, syntheticUserID string) (any, error) {
	return f.proxy(syntheticUserID, f.result)
}
func (f *fakeResourceAPI) ProxyCategories(ctx context.Context, syntheticUserID string) (any, error) {
	return f.proxy(syntheticUserID, f.result)
}

func routerWithSession(api ResourceAPI, session *models.SandboxSession) *Router {
	repo := &fakeSessionRepo{session: session}
	store := NewStore(&fakeSessionAPI{}, repo, "admin-1")
	return NewRouter(store, api)
}

func TestListingsProductionHasNoSandboxTag(t *testing.T) {
	api := &fakeResourceAPI{result: map[string]any{"listings": []any{}}}
	router := routerWithSession(api, nil)

	result, err := router.GetListings(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, api.prodCalls)
	assert.Equal(t, 0, api.proxyCalls)
	body, ok := result.(map[string]any)
	require.True(t, ok)
	_, tagged := body["sandbox_mode"]
	assert.False(t, tagged)
}

func TestListingsSandboxTagsObject(t *testing.T) {
	api := &fakeResourceAPI{result: map[string]any{"listings": []any{}}}
	router := routerWithSession(api, activeSession(models.RoleBuyer))

	result, err := router.GetListings(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, api.prodCalls)
	assert.Equal(t, 1, api.proxyCalls)
	assert.Equal(t, "synthetic-9", api.lastUser)
	body, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, body["sandbox_mode"])
}

func TestListingsSandboxTagsEveryArrayElement(t *testing.T) {
	api := &fakeResourceAPI{result: []any{
		map[string]any{"id": "l-1"},
		map[string]any{"id": "l-2"},
	}}
	router := routerWithSession(api, activeSession(models.RoleBuyer))

	result, err := router.GetListings(context.Background(), nil)
	require.NoError(t, err)

	elements, ok := result.([]any)
	require.True(t, ok)
	for _, element := range elements {
		m, ok := element.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, m["sandbox_mode"])
	}
}

func TestOrdersUseSyntheticUserInSandbox(t *testing.T) {
	api := &fakeResourceAPI{result: []any{}}
	router := routerWithSession(api, activeSession(models.RoleBuyer))

	_, err := router.GetMyOrders(context.Background(), "real-user")
	require.NoError(t, err)

	assert.Equal(t, 1, api.proxyCalls)
	assert.Equal(t, "synthetic-9", api.lastUser, "the real user id must never reach the proxy")
}

func TestOrdersWithoutSyntheticUserReturnEmpty(t *testing.T) {
	session := activeSession(models.RoleBuyer)
	session.SyntheticUserID = ""
	api := &fakeResourceAPI{result: []any{map[string]any{"id": "o-1"}}}
	router := routerWithSession(api, session)

	result, err := router.GetMyOrders(context.Background(), "real-user")
	require.NoError(t, err)

	assert.Equal(t, 0, api.prodCalls)
	assert.Equal(t, 0, api.proxyCalls)
	assert.Equal(t, []any{}, result)
}

func TestOrdersProductionUsesRealUser(t *testing.T) {
	api := &fakeResourceAPI{result: []any{}}
	router := routerWithSession(api, nil)

	_, err := router.GetMyOrders(context.Background(), "real-user")
	require.NoError(t, err)

	assert.Equal(t, 1, api.prodCalls)
	assert.Equal(t, "real-user", api.lastUser)
}

func TestSendMessageSandboxSubstitutesUser(t *testing.T) {
	api := &fakeResourceAPI{result: map[string]any{"id": "m-1"}}
	router := routerWithSession(api, activeSession(models.RoleSeller))

	result, err := router.SendMessage(context.Background(), "conv-1", "real-user", "hello")
	require.NoError(t, err)

	assert.Equal(t, "synthetic-9", api.lastUser)
	body, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, body["sandbox_mode"])
}

func TestCategoriesRoutedBySessionState(t *testing.T) {
	api := &fakeResourceAPI{result: []any{map[string]any{"id": "c-1"}}}
	router := routerWithSession(api, nil)
	_, err := router.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.prodCalls)

	api = &fakeResourceAPI{result: []any{map[string]any{"id": "c-1"}}}
	router = routerWithSession(api, activeSession(models.RoleBuyer))
	_, err = router.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.proxyCalls)
}
