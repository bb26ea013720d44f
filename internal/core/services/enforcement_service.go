package services

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/adapters/persistence/models"
	"inkwell/internal/adapters/persistence/repositories"
	"inkwell/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoBanThreshold is the pending-violation count at or above which a
// WARNING or SUSPENSION escalates to an automatic ban.
const AutoBanThreshold = 2

// Description suffixes appended by the engine. At most one suffix is ever
// appended; escalation wins when both would apply.
const (
	autoBanSuffix      = " (Automatic ban due to exceeding violation limit)"
	adminRevokedSuffix = " (Admin privileges revoked)"
)

// Decision is the computed outcome of one enforcement action, before it is
// applied to the store. All action x escalation combinations are enumerable
// through Decide, independent of the database.
type Decision struct {
	Status          domain.UserStatus
	Severity        domain.ViolationSeverity
	Type            domain.ViolationType
	ViolationStatus domain.ViolationStatus
	AutoBanned      bool
	DemoteRole      bool
	AdminRevoked    bool
}

// Decide resolves the decision table for an action given the target's
// pending-violation count and current role, both read before the action's
// own violation is appended.
//
//	action     | base status | severity | type       | escalates at >= 2 pending
//	WARNING    | ACTIVE      | LOW      | WARNING    | BANNED / AUTO_BAN
//	SUSPENSION | SUSPENDED   | MEDIUM   | SUSPENSION | BANNED / AUTO_BAN
//	BAN        | BANNED      | HIGH     | BAN        | never (already terminal)
//	RESOLVE    | ACTIVE      | LOW      | RESOLUTION | never
func Decide(action domain.EnforcementAction, pendingCount int64, currentRole domain.Role) Decision {
	var d Decision

	switch action {
	case domain.ActionWarning:
		d = Decision{Status: domain.StatusActive, Severity: domain.SeverityLow, Type: domain.ViolationWarning, ViolationStatus: domain.ViolationPending}
	case domain.ActionSuspension:
		d = Decision{Status: domain.StatusSuspended, Severity: domain.SeverityMedium, Type: domain.ViolationSuspension, ViolationStatus: domain.ViolationPending}
	case domain.ActionBan:
		d = Decision{Status: domain.StatusBanned, Severity: domain.SeverityHigh, Type: domain.ViolationBan, ViolationStatus: domain.ViolationPending}
	case domain.ActionResolve:
		d = Decision{Status: domain.StatusActive, Severity: domain.SeverityLow, Type: domain.ViolationResolution, ViolationStatus: domain.ViolationResolved}
	}

	// A manual BAN never reports auto-escalation, even at a high count
	if pendingCount >= AutoBanThreshold && (action == domain.ActionWarning || action == domain.ActionSuspension) {
		d.Status = domain.StatusBanned
		d.Type = domain.ViolationAutoBan
		d.AutoBanned = true
	}

	// Demotion to "user" is unconditional on entering SUSPENDED or BANNED;
	// the revocation flag fires only when the prior role really was admin
	d.DemoteRole = d.Status == domain.StatusSuspended || d.Status == domain.StatusBanned
	d.AdminRevoked = d.DemoteRole && currentRole == domain.RoleAdmin

	return d
}

// Annotate builds the violation description for a decision. Only one suffix
// is ever appended, escalation taking precedence over revocation.
func Annotate(reason string, d Decision) string {
	if d.AutoBanned {
		return reason + autoBanSuffix
	}
	if d.AdminRevoked {
		return reason + adminRevokedSuffix
	}
	return reason
}

// ActionResult is the observable output of an applied enforcement action
type ActionResult struct {
	User         *models.UserResponse `json:"user"`
	AutoBanned   bool                 `json:"auto_banned"`
	AdminRevoked bool                 `json:"admin_revoked"`
}

// EnforcementService translates admin enforcement intent into a user status
// change plus a violation record, applied atomically.
type EnforcementService struct {
	db            *gorm.DB
	violationRepo *repositories.ViolationRepository
}

// NewEnforcementService creates a new enforcement service
func NewEnforcementService(db *gorm.DB, violationRepo *repositories.ViolationRepository) *EnforcementService {
	return &EnforcementService{
		db:            db,
		violationRepo: violationRepo,
	}
}

// ApplyAction applies one enforcement action to the target user. The status
// update and the violation insert commit together or not at all; the target
// row is locked for the whole read-decide-write section so two concurrent
// actions against the same user serialize.
func (s *EnforcementService) ApplyAction(ctx context.Context, targetUserID uint, rawAction, reason string) (*ActionResult, error) {
	action, err := domain.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrEmptyReason
	}

	var result *ActionResult

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, targetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		violations := s.violationRepo.WithTx(tx)

		// Count before this action's violation is appended
		pendingCount, err := violations.CountPendingByUserID(ctx, user.ID)
		if err != nil {
			return err
		}

		d := Decide(action, pendingCount, domain.Role(user.Role))

		user.Status = string(d.Status)
		if d.DemoteRole {
			user.Role = string(domain.RoleUser)
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		violation := &models.Violation{
			UserID:      user.ID,
			Type:        string(d.Type),
			Severity:    string(d.Severity),
			Status:      string(d.ViolationStatus),
			Description: Annotate(reason, d),
		}
		if err := violations.Create(ctx, violation); err != nil {
			return err
		}

		result = &ActionResult{
			User:         user.ToResponse(),
			AutoBanned:   d.AutoBanned,
			AdminRevoked: d.AdminRevoked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListViolations lists a user's enforcement history, newest first
func (s *EnforcementService) ListViolations(ctx context.Context, userID uint, offset, limit int) ([]*models.Violation, int64, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrUserNotFound
		}
		return nil, 0, err
	}

	return s.violationRepo.ListByUserID(ctx, userID, offset, limit)
}
