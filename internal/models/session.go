package models

import "time"

// Sandbox roles an admin can preview the marketplace as.
const (
	RoleBuyer            = "buyer"
	RoleSeller           = "seller"
	RoleTransportPartner = "transport_partner"
	RoleAdmin            = "admin"
)

// Session statuses reported by the marketplace backend.
const (
	SessionStatusActive = "active"
	SessionStatusEnded  = "ended"
)

// SandboxSession is the sandbox session descriptor returned by the backend.
// It is persisted locally as a single row keyed by admin ID, so the session
// id, role and synthetic user id are always written together.
type SandboxSession struct {
	SessionID                string    `json:"id" gorm:"column:session_id"`
	AdminID                  string    `json:"admin_id" gorm:"primaryKey"`
	Role                     string    `json:"role" gorm:"size:30"`
	Status                   string    `json:"status" gorm:"size:20"`
	SyntheticUserID          string    `json:"synthetic_user_id"`
	StartedAt                time.Time `json:"started_at"`
	SimulatedTimeOffsetHours int       `json:"simulated_time_offset_hours"`
	UpdatedAt                time.Time `json:"-"`
}

// IsActive reports whether the session descriptor is usable for proxying.
func (s *SandboxSession) IsActive() bool {
	return s != nil && s.Status == SessionStatusActive
}

// EnterSandboxRequest is the admin request body for starting a sandbox session.
type EnterSandboxRequest struct {
	Role string `json:"role" validate:"required,oneof=buyer seller transport_partner admin"`
}

// SwitchRoleRequest is the admin request body for switching the sandbox role.
type SwitchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=buyer seller transport_partner admin"`
}
