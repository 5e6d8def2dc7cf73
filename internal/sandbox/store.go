package sandbox

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/anonto42/avida-market/gateway/internal/repositories"
)

// SessionAPI is the slice of the upstream client the store needs.
type SessionAPI interface {
	StartSession(ctx context.Context, adminID, role string) (*models.SandboxSession, error)
	EndSession(ctx context.Context, sessionID, adminID string) error
	SwitchRole(ctx context.Context, sessionID, adminID, newRole string) (bool, error)
	ActiveSession(ctx context.Context, adminID string) (bool, *models.SandboxSession, error)
}

// Store owns the sandbox session lifecycle for one admin id. The session is
// persisted as a single composite row; Active and Session re-read that row on
// every call, so they can transiently disagree with the in-memory flag right
// after a state change.
type Store struct {
	api     SessionAPI
	repo    repositories.SessionRepository
	adminID string

	mu     sync.Mutex
	active bool
}

// NewStore creates a new Store for the given admin id.
func NewStore(api SessionAPI, repo repositories.SessionRepository, adminID string) *Store {
	return &Store{api: api, repo: repo, adminID: adminID}
}

// Enter starts a sandbox session in the given role and persists it. On any
// transport or validation error the local state is left unchanged.
func (s *Store) Enter(ctx context.Context, role string) error {
	session, err := s.api.StartSession(ctx, s.adminID, role)
	if err != nil {
		return fmt.Errorf("failed to start sandbox session: %w", err)
	}
	session.AdminID = s.adminID

	if err := s.repo.Save(session); err != nil {
		return fmt.Errorf("failed to persist sandbox session: %w", err)
	}

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()
	return nil
}

// Exit ends the session. The remote end call is best-effort; the persisted
// row is removed and the in-memory flag cleared no matter what it returned.
func (s *Store) Exit(ctx context.Context) error {
	session, err := s.repo.Get(s.adminID)
	if err != nil {
		log.Printf("failed to read sandbox session on exit: %v", err)
	}
	if session != nil {
		if err := s.api.EndSession(ctx, session.SessionID, s.adminID); err != nil {
			log.Printf("best-effort sandbox session end failed: %v", err)
		}
	}

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()

	if err := s.repo.Delete(s.adminID); err != nil {
		return fmt.Errorf("failed to clear sandbox session: %w", err)
	}
	return nil
}

// SwitchRole changes the session role. Switching to the current role is a
// successful no-op with zero network calls. On success the session is
// re-fetched rather than patched locally: the backend may reissue the
// session id.
func (s *Store) SwitchRole(ctx context.Context, newRole string) error {
	session, err := s.repo.Get(s.adminID)
	if err != nil {
		return fmt.Errorf("failed to read sandbox session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("no sandbox session to switch role on")
	}
	if session.Role == newRole {
		return nil
	}

	ok, err := s.api.SwitchRole(ctx, session.SessionID, s.adminID, newRole)
	if err != nil {
		return fmt.Errorf("failed to switch sandbox role: %w", err)
	}
	if !ok {
		return fmt.Errorf("backend rejected sandbox role switch to %s", newRole)
	}

	active, fresh, err := s.api.ActiveSession(ctx, s.adminID)
	if err != nil {
		return fmt.Errorf("failed to re-fetch sandbox session after role switch: %w", err)
	}
	if !active || fresh == nil {
		return fmt.Errorf("sandbox session no longer active after role switch")
	}
	fresh.AdminID = s.adminID

	if err := s.repo.Save(fresh); err != nil {
		return fmt.Errorf("failed to persist sandbox session: %w", err)
	}
	return nil
}

// Recheck reconciles the persisted session with the backend at startup. A
// stale or ended session is purged; reconciliation failures only log.
func (s *Store) Recheck(ctx context.Context) {
	session, err := s.repo.Get(s.adminID)
	if err != nil {
		log.Printf("sandbox session recheck: read failed: %v", err)
		return
	}
	if session == nil {
		return
	}

	active, fresh, err := s.api.ActiveSession(ctx, s.adminID)
	if err != nil {
		log.Printf("sandbox session recheck: upstream query failed: %v", err)
		return
	}
	if !active || fresh == nil {
		if err := s.repo.Delete(s.adminID); err != nil {
			log.Printf("sandbox session recheck: purge failed: %v", err)
		}
		return
	}

	fresh.AdminID = s.adminID
	if err := s.repo.Save(fresh); err != nil {
		log.Printf("sandbox session recheck: persist failed: %v", err)
		return
	}

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()
	log.Printf("sandbox session recheck: active session restored for admin %s", s.adminID)
}

// Session returns the persisted session when its status is active, nil
// otherwise. Reads storage on every call.
func (s *Store) Session() *models.SandboxSession {
	session, err := s.repo.Get(s.adminID)
	if err != nil {
		log.Printf("failed to read sandbox session: %v", err)
		return nil
	}
	if !session.IsActive() {
		return nil
	}
	return session
}

// Active reports whether a persisted active session exists.
func (s *Store) Active() bool {
	return s.Session() != nil
}
