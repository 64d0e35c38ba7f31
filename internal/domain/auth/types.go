package auth

// Package auth contains domain-level types for identity and sessions.
// It is pure and free of store/transport concerns.

import "time"

// Role represents an application's authorization role.
// Kept in string form for easy persistence and authorizer context values.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleAdmin      Role = "Admin"
	RoleUser       Role = "User"
)

// Status represents a user's account status. Only active users may log in.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// User is an immutable identity record, created by an out-of-scope
// provisioning process.
type User struct {
	ID     string
	Email  string
	Role   Role
	Status Status
}

// IsActive reports whether the user may log in.
func (u User) IsActive() bool { return u.Status == StatusActive }

// AuthSession is a one-time login code awaiting redemption. A user may have
// several outstanding at once; each expires five minutes after issuance.
type AuthSession struct {
	ID     string
	UserID string
	Code   string
	Expiry time.Time
}

// Session is the durable record backing an authenticated browser session.
// ID is an opaque identifier carried in the session cookie; CSRFToken is
// issued alongside it for the double-submit check on state-changing calls.
type Session struct {
	ID        string
	UserID    string
	CSRFToken string
	Expiry    time.Time
}

// Context is the identity attached to an authorized request and consumed by
// downstream handlers.
type Context struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// MemberType is a user's membership level within a team.
type MemberType string

const (
	MemberTypeAdmin    MemberType = "Admin"
	MemberTypeMaintain MemberType = "Maintain"
	MemberTypeUser     MemberType = "User"
)

// ValidMemberType reports whether m is a known membership level.
func ValidMemberType(m MemberType) bool {
	switch m {
	case MemberTypeAdmin, MemberTypeMaintain, MemberTypeUser:
		return true
	default:
		return false
	}
}

// Team groups users for shared resource access.
type Team struct {
	Name string
}

// TeamMember records a user's membership in a team.
type TeamMember struct {
	TeamName string
	UserID   string
	Type     MemberType
}

// ToolType identifies a provisionable workbench tool.
type ToolType string

const (
	ToolTypeJupyter ToolType = "Jupyter"
	ToolTypeRStudio ToolType = "RStudio"
	ToolTypeVSCode  ToolType = "VSCode"
)

// ValidToolType reports whether t is a known tool type.
func ValidToolType(t ToolType) bool {
	switch t {
	case ToolTypeJupyter, ToolTypeRStudio, ToolTypeVSCode:
		return true
	default:
		return false
	}
}

// Tool is a provisioned workbench instance owned by a user.
type Tool struct {
	ID      string
	UserID  string
	Type    ToolType
	Version string
	CPU     string
	Memory  string
	Status  string
}
