package sandbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionAPI struct {
	startCalls  int
	endCalls    int
	switchCalls int
	activeCalls int

	startSession  *models.SandboxSession
	startErr      error
	endErr        error
	switchOK      bool
	switchErr     error
	active        bool
	activeSession *models.SandboxSession
	activeErr     error
}

func (f *fakeSessionAPI) StartSession(ctx context.Context, adminID, role string) (*models.SandboxSession, error) {
	f.startCalls++
	if f.startErr != nil {
		return nil, f.startErr
	}
	session := *f.startSession
	session.Role = role
	return &session, nil
}

func (f *fakeSessionAPI) EndSession(ctx context.Context, sessionID, adminID string) error {
	f.endCalls++
	return f.endErr
}

func (f *fakeSessionAPI) SwitchRole(ctx context.Context, sessionID, adminID, newRole string) (bool, error) {
	f.switchCalls++
	return f.switchOK, f.switchErr
}

func (f *fakeSessionAPI) ActiveSession(ctx context.Context, adminID string) (bool, *models.SandboxSession, error) {
	f.activeCalls++
	if f.activeErr != nil {
		return false, nil, f.activeErr
	}
	if !f.active {
		return false, nil, nil
	}
	session := *f.activeSession
	return true, &session, nil
}

type fakeSessionRepo struct {
	session   *models.SandboxSession
	getErr    error
	saveErr   error
	deleteErr error
	deletes   int
}

func (r *fakeSessionRepo) Save(session *models.SandboxSession) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	stored := *session
	r.session = &stored
	return nil
}

func (r *fakeSessionRepo) Get(adminID string) (*models.SandboxSession, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.session == nil {
		return nil, nil
	}
	stored := *r.session
	return &stored, nil
}

func (r *fakeSessionRepo) Delete(adminID string) error {
	r.deletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.session = nil
	return nil
}

func activeSession(role string) *models.SandboxSession {
	return &models.SandboxSession{
		SessionID:       "sess-1",
		AdminID:         "admin-1",
		Role:            role,
		Status:          models.SessionStatusActive,
		SyntheticUserID: "synthetic-9",
		StartedAt:       time.Now(),
	}
}

func TestEnterPersistsSession(t *testing.T) {
	api := &fakeSessionAPI{startSession: activeSession(models.RoleBuyer)}
	repo := &fakeSessionRepo{}
	store := NewStore(api, repo, "admin-1")

	require.NoError(t, store.Enter(context.Background(), models.RoleSeller))

	require.NotNil(t, repo.session)
	assert.Equal(t, models.RoleSeller, repo.session.Role)
	assert.Equal(t, "admin-1", repo.session.AdminID)
	assert.True(t, store.Active())
}

func TestEnterFailureLeavesStateUnchanged(t *testing.T) {
	api := &fakeSessionAPI{startErr: errors.New("backend down")}
	repo := &fakeSessionRepo{}
	store := NewStore(api, repo, "admin-1")

	require.Error(t, store.Enter(context.Background(), models.RoleBuyer))
	assert.Nil(t, repo.session)
	assert.False(t, store.Active())
}

func TestExitTeardownIsTotal(t *testing.T) {
	// Even when the remote end call fails, the persisted row is removed and
	// sandbox mode reads as off.
	api := &fakeSessionAPI{endErr: errors.New("backend down")}
	repo := &fakeSessionRepo{session: activeSession(models.RoleBuyer)}
	store := NewStore(api, repo, "admin-1")

	require.NoError(t, store.Exit(context.Background()))

	assert.Equal(t, 1, api.endCalls)
	assert.Equal(t, 1, repo.deletes)
	assert.Nil(t, repo.session)
	assert.False(t, store.Active())
}

func TestExitWithoutSessionSkipsRemoteEnd(t *testing.T) {
	api := &fakeSessionAPI{}
	repo := &fakeSessionRepo{}
	store := NewStore(api, repo, "admin-1")

	require.NoError(t, store.Exit(context.Background()))
	assert.Equal(t, 0, api.endCalls)
	assert.Equal(t, 1, repo.deletes)
}

func TestSwitchRoleSameRoleIsLocalNoOp(t *testing.T) {
	api := &fakeSessionAPI{}
	repo := &fakeSessionRepo{session: activeSession(models.RoleBuyer)}
	before := *repo.session
	store := NewStore(api, repo, "admin-1")

	require.NoError(t, store.SwitchRole(context.Background(), models.RoleBuyer))

	assert.Equal(t, 0, api.switchCalls, "same-role switch must not hit the network")
	assert.Equal(t, 0, api.activeCalls)
	assert.Equal(t, before, *repo.session, "session state must be untouched")
}

func TestSwitchRoleRefetchesSession(t *testing.T) {
	// The backend may reissue the session id, so a switch always re-fetches
	// and overwrites the whole record.
	reissued := activeSession(models.RoleSeller)
	reissued.SessionID = "sess-2"
	api := &fakeSessionAPI{switchOK: true, active: true, activeSession: reissued}
	repo := &fakeSessionRepo{session: activeSession(models.RoleBuyer)}
	store := NewStore(api, repo, "admin-1")

	require.NoError(t, store.SwitchRole(context.Background(), models.RoleSeller))

	assert.Equal(t, 1, api.switchCalls)
	assert.Equal(t, 1, api.activeCalls)
	require.NotNil(t, repo.session)
	assert.Equal(t, "sess-2", repo.session.SessionID)
	assert.Equal(t, models.RoleSeller, repo.session.Role)
}

func TestSwitchRoleRejectedByBackend(t *testing.T) {
	api := &fakeSessionAPI{switchOK: false}
	repo := &fakeSessionRepo{session: activeSession(models.RoleBuyer)}
	store := NewStore(api, repo, "admin-1")

	require.Error(t, store.SwitchRole(context.Background(), models.RoleSeller))
	assert.Equal(t, models.RoleBuyer, repo.session.Role)
}

func TestSwitchRoleWithoutSession(t *testing.T) {
	api := &fakeSessionAPI{}
	store := NewStore(api, &fakeSessionRepo{}, "admin-1")

	require.Error(t, store.SwitchRole(context.Background(), models.RoleSeller))
	assert.Equal(t, 0, api.switchCalls)
}

func TestRecheckPurgesStaleSession(t *testing.T) {
	api := &fakeSessionAPI{active: false}
	repo := &fakeSessionRepo{session: activeSession(models.RoleBuyer)}
	store := NewStore(api, repo, "admin-1")

	store.Recheck(context.Background())

	assert.Nil(t, repo.session)
	assert.False(t, store.Active())
}

func TestRecheckRestoresActiveSession(t *testing.T) {
	fresh := activeSession(models.RoleSeller)
	api := &fakeSessionAPI{active: true, activeSession: fresh}
	repo := &fakeSessionRepo{session: activeSession(models.RoleBuyer)}
	store := NewStore(api, repo, "admin-1")

	store.Recheck(context.Background())

	require.NotNil(t, repo.session)
	assert.Equal(t, models.RoleSeller, repo.session.Role)
	assert.True(t, store.Active())
}

func TestActiveIgnoresEndedSession(t *testing.T) {
	ended := activeSession(models.RoleBuyer)
	ended.Status = models.SessionStatusEnded
	repo := &fakeSessionRepo{session: ended}
	store := NewStore(&fakeSessionAPI{}, repo, "admin-1")

	assert.False(t, store.Active())
	assert.Nil(t, store.Session())
}
