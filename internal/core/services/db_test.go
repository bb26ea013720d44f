package services

import (
	"errors"
	"testing"

	"inkwell/internal/adapters/persistence/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var errStoreFailure = errors.New("store write failed")

// newTestDB opens an isolated in-memory database with the full schema.
// SQLite has no SELECT ... FOR UPDATE, so the locking clause is dropped and
// the single connection serializes access; the production queries run
// unchanged otherwise.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db.ClauseBuilders["FOR"] = func(clause.Clause, clause.Builder) {}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// failCreatesInto makes every insert into the named table fail, simulating a
// mid-transaction store error so rollback behavior can be observed.
func failCreatesInto(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	err := db.Callback().Create().Before("gorm:create").Register("test_fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == table {
			tx.AddError(errStoreFailure)
		}
	})
	if err != nil {
		t.Fatalf("register failure callback: %v", err)
	}
}

// failUpdatesInto makes every update against the named table fail, for
// observing rollback of writes earlier in the same transaction.
func failUpdatesInto(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	err := db.Callback().Update().Before("gorm:update").Register("test_fail_update_"+table, func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == table {
			tx.AddError(errStoreFailure)
		}
	})
	if err != nil {
		t.Fatalf("register failure callback: %v", err)
	}
}

func seedUser(t *testing.T, db *gorm.DB, username, role, status string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@inkwell.press",
		Password: "hashed",
		Role:     role,
		Status:   status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedViolation(t *testing.T, db *gorm.DB, userID uint, vtype, status string) {
	t.Helper()

	v := &models.Violation{
		UserID:      userID,
		Type:        vtype,
		Severity:    "LOW",
		Status:      status,
		Description: "seeded",
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed violation: %v", err)
	}
}
