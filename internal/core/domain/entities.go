package domain

// Role represents user role in the system
type Role string

const (
	RoleUser   Role = "user"
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

// UserStatus represents platform access status for a user
type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
	StatusBanned    UserStatus = "BANNED"
)

// EnforcementAction is an admin-issued moderation action
type EnforcementAction string

const (
	ActionWarning    EnforcementAction = "WARNING"
	ActionSuspension EnforcementAction = "SUSPENSION"
	ActionBan        EnforcementAction = "BAN"
	ActionResolve    EnforcementAction = "RESOLVE"
)

// ParseAction validates a raw action string
func ParseAction(raw string) (EnforcementAction, error) {
	switch EnforcementAction(raw) {
	case ActionWarning, ActionSuspension, ActionBan, ActionResolve:
		return EnforcementAction(raw), nil
	}
	return "", ErrInvalidAction
}

// ViolationType classifies a violation record
type ViolationType string

const (
	ViolationWarning    ViolationType = "WARNING"
	ViolationSuspension ViolationType = "SUSPENSION"
	ViolationBan        ViolationType = "BAN"
	ViolationAutoBan    ViolationType = "AUTO_BAN"
	ViolationResolution ViolationType = "RESOLUTION"
	ViolationRoleChange ViolationType = "ROLE_CHANGE"
)

// ViolationSeverity grades a violation record
type ViolationSeverity string

const (
	SeverityLow    ViolationSeverity = "LOW"
	SeverityMedium ViolationSeverity = "MEDIUM"
	SeverityHigh   ViolationSeverity = "HIGH"
)

// ViolationStatus marks whether a violation still counts toward escalation
type ViolationStatus string

const (
	ViolationPending  ViolationStatus = "PENDING"
	ViolationResolved ViolationStatus = "RESOLVED"
)
