package services

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/adapters/persistence/models"
	"inkwell/internal/adapters/persistence/repositories"
	"inkwell/internal/core/domain"

	"gorm.io/gorm"
)

func TestDecideBaseOutcomes(t *testing.T) {
	tests := []struct {
		name         string
		action       domain.EnforcementAction
		wantStatus   domain.UserStatus
		wantSeverity domain.ViolationSeverity
		wantType     domain.ViolationType
		wantVStatus  domain.ViolationStatus
	}{
		{"warning", domain.ActionWarning, domain.StatusActive, domain.SeverityLow, domain.ViolationWarning, domain.ViolationPending},
		{"suspension", domain.ActionSuspension, domain.StatusSuspended, domain.SeverityMedium, domain.ViolationSuspension, domain.ViolationPending},
		{"ban", domain.ActionBan, domain.StatusBanned, domain.SeverityHigh, domain.ViolationBan, domain.ViolationPending},
		{"resolve", domain.ActionResolve, domain.StatusActive, domain.SeverityLow, domain.ViolationResolution, domain.ViolationResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.action, 0, domain.RoleUser)

			if d.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", d.Status, tt.wantStatus)
			}
			if d.Severity != tt.wantSeverity {
				t.Errorf("Severity = %s, want %s", d.Severity, tt.wantSeverity)
			}
			if d.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", d.Type, tt.wantType)
			}
			if d.ViolationStatus != tt.wantVStatus {
				t.Errorf("ViolationStatus = %s, want %s", d.ViolationStatus, tt.wantVStatus)
			}
			if d.AutoBanned {
				t.Error("AutoBanned = true at zero pending count")
			}
		})
	}
}

func TestDecideEscalation(t *testing.T) {
	tests := []struct {
		name           string
		action         domain.EnforcementAction
		pendingCount   int64
		wantStatus     domain.UserStatus
		wantType       domain.ViolationType
		wantSeverity   domain.ViolationSeverity
		wantAutoBanned bool
	}{
		// Below threshold: base outcome stands
		{"warning at 0 pending", domain.ActionWarning, 0, domain.StatusActive, domain.ViolationWarning, domain.SeverityLow, false},
		{"warning at 1 pending", domain.ActionWarning, 1, domain.StatusActive, domain.ViolationWarning, domain.SeverityLow, false},
		{"suspension at 1 pending", domain.ActionSuspension, 1, domain.StatusSuspended, domain.ViolationSuspension, domain.SeverityMedium, false},

		// At and above threshold: WARNING and SUSPENSION escalate, severity
		// stays at the base action's grade
		{"warning at 2 pending", domain.ActionWarning, 2, domain.StatusBanned, domain.ViolationAutoBan, domain.SeverityLow, true},
		{"warning at 3 pending", domain.ActionWarning, 3, domain.StatusBanned, domain.ViolationAutoBan, domain.SeverityLow, true},
		{"suspension at 2 pending", domain.ActionSuspension, 2, domain.StatusBanned, domain.ViolationAutoBan, domain.SeverityMedium, true},
		{"suspension at 3 pending", domain.ActionSuspension, 3, domain.StatusBanned, domain.ViolationAutoBan, domain.SeverityMedium, true},

		// BAN and RESOLVE never escalate
		{"ban at 2 pending", domain.ActionBan, 2, domain.StatusBanned, domain.ViolationBan, domain.SeverityHigh, false},
		{"ban at 5 pending", domain.ActionBan, 5, domain.StatusBanned, domain.ViolationBan, domain.SeverityHigh, false},
		{"resolve at 2 pending", domain.ActionResolve, 2, domain.StatusActive, domain.ViolationResolution, domain.SeverityLow, false},
		{"resolve at 5 pending", domain.ActionResolve, 5, domain.StatusActive, domain.ViolationResolution, domain.SeverityLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.action, tt.pendingCount, domain.RoleUser)

			if d.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", d.Status, tt.wantStatus)
			}
			if d.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", d.Type, tt.wantType)
			}
			if d.Severity != tt.wantSeverity {
				t.Errorf("Severity = %s, want %s", d.Severity, tt.wantSeverity)
			}
			if d.AutoBanned != tt.wantAutoBanned {
				t.Errorf("AutoBanned = %v, want %v", d.AutoBanned, tt.wantAutoBanned)
			}
		})
	}
}

func TestDecideDemotion(t *testing.T) {
	tests := []struct {
		name             string
		action           domain.EnforcementAction
		pendingCount     int64
		role             domain.Role
		wantDemote       bool
		wantAdminRevoked bool
	}{
		{"warning keeps role", domain.ActionWarning, 0, domain.RoleAdmin, false, false},
		{"resolve keeps role", domain.ActionResolve, 0, domain.RoleAdmin, false, false},
		{"suspension demotes user", domain.ActionSuspension, 0, domain.RoleUser, true, false},
		{"suspension demotes reader", domain.ActionSuspension, 0, domain.RoleReader, true, false},
		{"suspension revokes admin", domain.ActionSuspension, 0, domain.RoleAdmin, true, true},
		{"ban demotes user", domain.ActionBan, 0, domain.RoleUser, true, false},
		{"ban revokes admin", domain.ActionBan, 0, domain.RoleAdmin, true, true},
		{"escalated warning demotes user", domain.ActionWarning, 2, domain.RoleUser, true, false},
		{"escalated warning revokes admin", domain.ActionWarning, 2, domain.RoleAdmin, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.action, tt.pendingCount, tt.role)

			if d.DemoteRole != tt.wantDemote {
				t.Errorf("DemoteRole = %v, want %v", d.DemoteRole, tt.wantDemote)
			}
			if d.AdminRevoked != tt.wantAdminRevoked {
				t.Errorf("AdminRevoked = %v, want %v", d.AdminRevoked, tt.wantAdminRevoked)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		d      Decision
		want   string
	}{
		{
			name:   "plain reason untouched",
			reason: "spam",
			d:      Decision{},
			want:   "spam",
		},
		{
			name:   "auto ban suffix",
			reason: "spam",
			d:      Decision{AutoBanned: true},
			want:   "spam (Automatic ban due to exceeding violation limit)",
		},
		{
			name:   "admin revoked suffix",
			reason: "policy abuse",
			d:      Decision{AdminRevoked: true},
			want:   "policy abuse (Admin privileges revoked)",
		},
		{
			name:   "escalation wins over revocation",
			reason: "spam",
			d:      Decision{AutoBanned: true, AdminRevoked: true},
			want:   "spam (Automatic ban due to exceeding violation limit)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Annotate(tt.reason, tt.d)
			if got != tt.want {
				t.Errorf("Annotate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	valid := []string{"WARNING", "SUSPENSION", "BAN", "RESOLVE"}
	for _, raw := range valid {
		action, err := domain.ParseAction(raw)
		if err != nil {
			t.Errorf("ParseAction(%q) unexpected error: %v", raw, err)
		}
		if string(action) != raw {
			t.Errorf("ParseAction(%q) = %q", raw, action)
		}
	}

	invalid := []string{"", "warning", "Warning", "DELETE", "AUTO_BAN", "RESOLUTION"}
	for _, raw := range invalid {
		if _, err := domain.ParseAction(raw); !errors.Is(err, domain.ErrInvalidAction) {
			t.Errorf("ParseAction(%q) error = %v, want ErrInvalidAction", raw, err)
		}
	}
}

func newEnforcementService(t *testing.T) (*EnforcementService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewEnforcementService(db, repositories.NewViolationRepository(db)), db
}

// ApplyAction on an admin with two pending violations: the warning escalates
// to an automatic ban, the role is revoked, and the annotated violation lands
// in the same commit as the status change.
func TestApplyActionEscalatesAdmin(t *testing.T) {
	svc, db := newEnforcementService(t)
	user := seedUser(t, db, "mod_target", "admin", "ACTIVE")
	seedViolation(t, db, user.ID, "WARNING", "PENDING")
	seedViolation(t, db, user.ID, "SUSPENSION", "PENDING")

	result, err := svc.ApplyAction(context.Background(), user.ID, "WARNING", "spam")
	if err != nil {
		t.Fatalf("ApplyAction() error: %v", err)
	}

	if !result.AutoBanned {
		t.Error("AutoBanned = false, want true")
	}
	if !result.AdminRevoked {
		t.Error("AdminRevoked = false, want true")
	}
	if result.User.Status != "BANNED" {
		t.Errorf("result status = %s, want BANNED", result.User.Status)
	}
	if result.User.Role != "user" {
		t.Errorf("result role = %s, want user", result.User.Role)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Status != "BANNED" || stored.Role != "user" {
		t.Errorf("stored user = %s/%s, want BANNED/user", stored.Status, stored.Role)
	}

	var violation models.Violation
	if err := db.Where("user_id = ?", user.ID).Order("id DESC").First(&violation).Error; err != nil {
		t.Fatalf("load violation: %v", err)
	}
	if violation.Type != "AUTO_BAN" {
		t.Errorf("violation type = %s, want AUTO_BAN", violation.Type)
	}
	if violation.Severity != "LOW" {
		t.Errorf("violation severity = %s, want LOW", violation.Severity)
	}
	if violation.Status != "PENDING" {
		t.Errorf("violation status = %s, want PENDING", violation.Status)
	}
	want := "spam (Automatic ban due to exceeding violation limit)"
	if violation.Description != want {
		t.Errorf("violation description = %q, want %q", violation.Description, want)
	}
}

func TestApplyActionWarningBelowThreshold(t *testing.T) {
	svc, db := newEnforcementService(t)
	user := seedUser(t, db, "writer", "reader", "ACTIVE")
	seedViolation(t, db, user.ID, "WARNING", "PENDING")

	result, err := svc.ApplyAction(context.Background(), user.ID, "WARNING", "mild spam")
	if err != nil {
		t.Fatalf("ApplyAction() error: %v", err)
	}

	if result.AutoBanned || result.AdminRevoked {
		t.Errorf("flags = %v/%v, want false/false", result.AutoBanned, result.AdminRevoked)
	}
	if result.User.Status != "ACTIVE" {
		t.Errorf("status = %s, want ACTIVE", result.User.Status)
	}
	if result.User.Role != "reader" {
		t.Errorf("role = %s, want reader (warnings never demote)", result.User.Role)
	}

	var violation models.Violation
	if err := db.Where("user_id = ?", user.ID).Order("id DESC").First(&violation).Error; err != nil {
		t.Fatalf("load violation: %v", err)
	}
	if violation.Type != "WARNING" || violation.Description != "mild spam" {
		t.Errorf("violation = %s %q, want WARNING with unsuffixed reason", violation.Type, violation.Description)
	}
}

func TestApplyActionSuspensionDemotesReader(t *testing.T) {
	svc, db := newEnforcementService(t)
	user := seedUser(t, db, "reader_target", "reader", "ACTIVE")

	result, err := svc.ApplyAction(context.Background(), user.ID, "SUSPENSION", "harassment")
	if err != nil {
		t.Fatalf("ApplyAction() error: %v", err)
	}

	if result.User.Status != "SUSPENDED" {
		t.Errorf("status = %s, want SUSPENDED", result.User.Status)
	}
	if result.User.Role != "user" {
		t.Errorf("role = %s, want user (demotion is unconditional)", result.User.Role)
	}
	if result.AdminRevoked {
		t.Error("AdminRevoked = true for a reader, want false")
	}

	var violation models.Violation
	if err := db.Where("user_id = ?", user.ID).Order("id DESC").First(&violation).Error; err != nil {
		t.Fatalf("load violation: %v", err)
	}
	if violation.Description != "harassment" {
		t.Errorf("description = %q, want unsuffixed reason", violation.Description)
	}
}

// RESOLVE always restores ACTIVE, and its own RESOLVED record never feeds a
// future escalation count.
func TestApplyActionResolveFromBanned(t *testing.T) {
	svc, db := newEnforcementService(t)
	user := seedUser(t, db, "appealed", "user", "BANNED")
	seedViolation(t, db, user.ID, "WARNING", "PENDING")
	seedViolation(t, db, user.ID, "SUSPENSION", "PENDING")

	result, err := svc.ApplyAction(context.Background(), user.ID, "RESOLVE", "appeal approved")
	if err != nil {
		t.Fatalf("ApplyAction() error: %v", err)
	}

	if result.User.Status != "ACTIVE" {
		t.Errorf("status = %s, want ACTIVE", result.User.Status)
	}
	if result.AutoBanned {
		t.Error("AutoBanned = true on RESOLVE, want false")
	}

	var violation models.Violation
	if err := db.Where("user_id = ?", user.ID).Order("id DESC").First(&violation).Error; err != nil {
		t.Fatalf("load violation: %v", err)
	}
	if violation.Type != "RESOLUTION" || violation.Status != "RESOLVED" {
		t.Errorf("violation = %s/%s, want RESOLUTION/RESOLVED", violation.Type, violation.Status)
	}

	var pending int64
	db.Model(&models.Violation{}).Where("user_id = ? AND status = ?", user.ID, "PENDING").Count(&pending)
	if pending != 2 {
		t.Errorf("pending count after RESOLVE = %d, want 2 (resolution record never counts)", pending)
	}
}

func TestApplyActionInputErrors(t *testing.T) {
	svc, db := newEnforcementService(t)
	user := seedUser(t, db, "someone", "user", "ACTIVE")

	if _, err := svc.ApplyAction(context.Background(), user.ID+100, "WARNING", "spam"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown user error = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.ApplyAction(context.Background(), user.ID, "DELETE", "spam"); !errors.Is(err, domain.ErrInvalidAction) {
		t.Errorf("bad action error = %v, want ErrInvalidAction", err)
	}
	if _, err := svc.ApplyAction(context.Background(), user.ID, "WARNING", "   "); !errors.Is(err, domain.ErrEmptyReason) {
		t.Errorf("blank reason error = %v, want ErrEmptyReason", err)
	}

	var count int64
	db.Model(&models.Violation{}).Count(&count)
	if count != 0 {
		t.Errorf("violations written on rejected input = %d, want 0", count)
	}
}

// A failure after the status update but before the violation insert rolls the
// whole action back: the user row and the ledger stay untouched.
func TestApplyActionRollsBackOnFailedInsert(t *testing.T) {
	svc, db := newEnforcementService(t)
	user := seedUser(t, db, "lucky", "admin", "ACTIVE")
	seedViolation(t, db, user.ID, "WARNING", "PENDING")
	seedViolation(t, db, user.ID, "SUSPENSION", "PENDING")

	failCreatesInto(t, db, "violations")

	if _, err := svc.ApplyAction(context.Background(), user.ID, "WARNING", "spam"); !errors.Is(err, errStoreFailure) {
		t.Fatalf("error = %v, want injected store failure", err)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Status != "ACTIVE" {
		t.Errorf("status after rollback = %s, want ACTIVE", stored.Status)
	}
	if stored.Role != "admin" {
		t.Errorf("role after rollback = %s, want admin", stored.Role)
	}

	var count int64
	db.Model(&models.Violation{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("violation count after rollback = %d, want 2", count)
	}
}
