package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardService aggregates moderation and monetization statistics for the
// admin landing page
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User statistics
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	SuspendedUsers int64 `json:"suspended_users"`
	BannedUsers    int64 `json:"banned_users"`

	// Moderation statistics
	PendingViolations   int64 `json:"pending_violations"`
	ViolationsThisMonth int64 `json:"violations_this_month"`
	AutoBansTotal       int64 `json:"auto_bans_total"`

	// Monetization statistics
	TotalPaidOut       decimal.Decimal `json:"total_paid_out"`
	OutstandingPending decimal.Decimal `json:"outstanding_pending"`
	PayoutsThisMonth   int64           `json:"payouts_this_month"`

	// Recent activity
	RecentViolations []ViolationSummary `json:"recent_violations"`
	TopViolators     []ViolatorStats    `json:"top_violators"`
	RecentPayouts    []PayoutSummary    `json:"recent_payouts"`
}

// ViolationSummary represents violation summary
type ViolationSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ViolatorStats represents per-user pending violation counts
type ViolatorStats struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Status   string `json:"status"`
	Pending  int64  `json:"pending"`
}

// PayoutSummary represents payout summary
type PayoutSummary struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// User counts by status
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("status = ? AND deleted_at IS NULL", "ACTIVE").Count(&data.ActiveUsers)
	s.db.WithContext(ctx).Table("users").Where("status = ? AND deleted_at IS NULL", "SUSPENDED").Count(&data.SuspendedUsers)
	s.db.WithContext(ctx).Table("users").Where("status = ? AND deleted_at IS NULL", "BANNED").Count(&data.BannedUsers)

	// Violation counts
	s.db.WithContext(ctx).Table("violations").Where("status = ?", "PENDING").Count(&data.PendingViolations)
	s.db.WithContext(ctx).Table("violations").Where("type = ?", "AUTO_BAN").Count(&data.AutoBansTotal)

	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	s.db.WithContext(ctx).Table("violations").
		Where("created_at >= ?", startOfMonth).
		Count(&data.ViolationsThisMonth)

	// Monetization totals
	s.db.WithContext(ctx).Table("payouts").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.TotalPaidOut)

	s.db.WithContext(ctx).Table("monetization_profiles").
		Select("COALESCE(SUM(pending_payout), 0)").
		Scan(&data.OutstandingPending)

	s.db.WithContext(ctx).Table("payouts").
		Where("processed_at >= ?", startOfMonth).
		Count(&data.PayoutsThisMonth)

	// Recent violations
	s.db.WithContext(ctx).Table("violations").
		Select("violations.id, users.username, violations.type, violations.severity, violations.status, violations.created_at").
		Joins("LEFT JOIN users ON violations.user_id = users.id").
		Order("violations.created_at DESC").
		Limit(10).
		Scan(&data.RecentViolations)

	// Users closest to the auto-ban threshold
	s.db.WithContext(ctx).Table("violations").
		Select("violations.user_id, users.username, users.status, COUNT(*) as pending").
		Joins("LEFT JOIN users ON violations.user_id = users.id").
		Where("violations.status = ?", "PENDING").
		Group("violations.user_id, users.username, users.status").
		Order("pending DESC").
		Limit(10).
		Scan(&data.TopViolators)

	// Recent payouts
	s.db.WithContext(ctx).Table("payouts").
		Select("payouts.id, users.username, payouts.amount, payouts.processed_at").
		Joins("LEFT JOIN monetization_profiles ON payouts.profile_id = monetization_profiles.id").
		Joins("LEFT JOIN users ON monetization_profiles.user_id = users.id").
		Order("payouts.processed_at DESC").
		Limit(10).
		Scan(&data.RecentPayouts)

	return data, nil
}
