package repositories

import (
	"errors"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository defines the interface for sandbox session persistence.
// The session is stored as one composite row per admin id, so the session id,
// role and synthetic user id are never written separately.
type SessionRepository interface {
	Save(session *models.SandboxSession) error
	Get(adminID string) (*models.SandboxSession, error) // (nil, nil) when absent
	Delete(adminID string) error
}

// PostgresSessionRepository implements SessionRepository for PostgreSQL
type PostgresSessionRepository struct {
	db *gorm.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
func NewPostgresSessionRepository(db *gorm.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// Save upserts the session row for its admin id
func (r *PostgresSessionRepository) Save(session *models.SandboxSession) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "admin_id"}},
		UpdateAll: true,
	}).Create(session).Error
}

// Get retrieves the session row for an admin id, or nil when none is stored
func (r *PostgresSessionRepository) Get(adminID string) (*models.SandboxSession, error) {
	var session models.SandboxSession
	if err := r.db.First(&session, "admin_id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Delete removes the session row for an admin id
func (r *PostgresSessionRepository) Delete(adminID string) error {
	return r.db.Delete(&models.SandboxSession{}, "admin_id = ?", adminID).Error
}
