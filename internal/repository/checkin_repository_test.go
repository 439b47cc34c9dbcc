package repository

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestRecordTx_InsertIsConflictTolerant(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var sql string
	err = db.Callback().Create().After("gorm:create").Register("capture_sql", func(tx *gorm.DB) {
		sql = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	repo := NewCheckinRepository(db)
	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if err := repo.Record("user-1", date); err != nil {
		t.Fatalf("record: %v", err)
	}

	// 并发写同一天时依赖唯一索引静默跳过，而不是让事务失败
	if !strings.Contains(sql, "ON CONFLICT") || !strings.Contains(sql, "DO NOTHING") {
		t.Fatalf("check-in insert is not conflict-tolerant: %q", sql)
	}
}
