package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Users & Violations
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	Status    string         `gorm:"size:20;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID                uint      `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	Status            string    `json:"status"`
	PendingViolations int64     `json:"pending_violations,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// Violation represents violations table (append-only enforcement history)
type Violation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Severity    string    `gorm:"size:10;not null" json:"severity"`
	Status      string    `gorm:"size:10;not null;index" json:"status"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Violation) TableName() string {
	return "violations"
}

// IsPending reports whether this violation still counts toward escalation
func (v *Violation) IsPending() bool {
	return v.Status == "PENDING"
}

// ============================================================
// Monetization
// ============================================================

// MonetizationProfile represents monetization_profiles table (one per creator)
type MonetizationProfile struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	PendingPayout decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"pending_payout"`
	TotalEarnings decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_earnings"`
	LastPayout    *time.Time      `json:"last_payout"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (MonetizationProfile) TableName() string {
	return "monetization_profiles"
}

// Payout represents payouts table (append-only payout history)
type Payout struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProfileID   uint            `gorm:"index;not null" json:"profile_id"`
	Reference   string          `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status      string          `gorm:"size:20;not null" json:"status"`
	ProcessedAt time.Time       `gorm:"not null" json:"processed_at"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Profile *MonetizationProfile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}

func (Payout) TableName() string {
	return "payouts"
}

// Payout statuses
const (
	PayoutStatusCompleted = "completed"
)

// ============================================================
// Content
// ============================================================

// Post represents posts table. Only the accrual counter matters to this
// service: view_count is written upward by the platform's view tracking and
// zeroed here when a payout closes an accumulation period.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AuthorID  uint           `gorm:"index;not null" json:"author_id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Slug      string         `gorm:"uniqueIndex;size:220;not null" json:"slug"`
	ViewCount int64          `gorm:"not null;default:0" json:"view_count"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all owned tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Violation{},
		&MonetizationProfile{},
		&Payout{},
		&Post{},
	)
}
