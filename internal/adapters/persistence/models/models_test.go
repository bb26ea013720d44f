package models

import "testing"

func TestUserToResponse(t *testing.T) {
	user := &User{
		ID:       7,
		Username: "writer",
		Email:    "writer@inkwell.press",
		Password: "hashed-secret",
		Role:     "user",
		Status:   "ACTIVE",
	}

	resp := user.ToResponse()

	if resp.ID != 7 || resp.Username != "writer" || resp.Email != "writer@inkwell.press" {
		t.Errorf("unexpected response identity fields: %+v", resp)
	}
	if resp.Role != "user" || resp.Status != "ACTIVE" {
		t.Errorf("unexpected role/status: %+v", resp)
	}
	if resp.PendingViolations != 0 {
		t.Errorf("PendingViolations = %d, want 0 by default", resp.PendingViolations)
	}
}

func TestViolationIsPending(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"PENDING", true},
		{"RESOLVED", false},
		{"", false},
	}

	for _, tt := range tests {
		v := &Violation{Status: tt.status}
		if got := v.IsPending(); got != tt.want {
			t.Errorf("IsPending() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}
