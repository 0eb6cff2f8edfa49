package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/basic_shop/internal/config"
)

const memoryDSN = ":memory:?_pragma=foreign_keys(1)"

// OpenTest opens a fresh in-memory sqlite database with foreign keys on and
// closes it when the test ends.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Open(ctx, config.DriverSQLite, memoryDSN)
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

// ErrCreateRejected is returned by creates refused through RejectCreates.
var ErrCreateRejected = errors.New("create rejected")

// RejectCreates fails every Create whose destination matches reject, before
// any SQL runs.
func RejectCreates(t testing.TB, db *gorm.DB, reject func(dest any) bool) {
	t.Helper()

	err := db.Callback().Create().Before("gorm:create").Register("test:reject_create", func(tx *gorm.DB) {
		if reject(tx.Statement.Dest) {
			_ = tx.AddError(ErrCreateRejected)
		}
	})
	if err != nil {
		t.Fatalf("failed to register create callback: %v", err)
	}
}
