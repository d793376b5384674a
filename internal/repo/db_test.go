package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/domain"
)

// newRepoDB opens a private in-memory database with the full schema.
func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(context.Background(), Options{
		Path: fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

// seedUser inserts a user with a throwaway hash.
func seedUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, name, name+"@example.com", "hash")
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func TestOpen_ErrorOnBadPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "does-not-exist", "app.db")

	db, err := Open(context.Background(), Options{Driver: DriverSQLite, Path: bad})
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}
	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpen_RejectsBadOptions(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Options{Driver: "mysql"}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
	if _, err := Open(ctx, Options{Driver: DriverPostgres}); err == nil {
		t.Fatalf("expected error for postgres without URL")
	}
	if _, err := Open(ctx, Options{Driver: DriverSQLite, Path: "  "}); err == nil {
		t.Fatalf("expected error for empty sqlite path")
	}
}

func TestOpen_File_SetsPragmasAndPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minitwit.db")

	db, err := Open(context.Background(), Options{Path: path, Tracing: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	var (
		journalMode string
		fkOn        int
		busyMS      int
	)
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if strings.ToLower(journalMode) != "wal" {
		t.Fatalf("expected journal_mode=wal, got %q", journalMode)
	}
	if err := db.Raw("PRAGMA foreign_keys;").Row().Scan(&fkOn); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if fkOn != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkOn)
	}
	if err := db.Raw("PRAGMA busy_timeout;").Row().Scan(&busyMS); err != nil {
		t.Fatalf("PRAGMA busy_timeout: %v", err)
	}
	if busyMS != 5000 {
		t.Fatalf("expected busy_timeout=5000, got %d", busyMS)
	}
	if stats := sqlDB.Stats(); stats.MaxOpenConnections != 10 {
		t.Fatalf("expected MaxOpenConnections=10, got %d", stats.MaxOpenConnections)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []string{"users", "messages", "followers", "latest"} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table %s to exist", tbl)
		}
	}
}

func TestPing(t *testing.T) {
	db := newRepoDB(t)
	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
	if err := Ping(context.Background(), db); err == nil {
		t.Fatalf("expected Ping to fail on a closed pool")
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t)

	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	if _, err := CreateFollower(ctx, db, a.UserID, b.UserID); err != nil {
		t.Fatalf("CreateFollower: %v", err)
	}
	if _, err := CreateMessage(ctx, db, a.UserID, "hi", 1); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if err := UpsertLatest(ctx, db, 5); err != nil {
		t.Fatalf("UpsertLatest: %v", err)
	}

	if err := Reset(ctx, db); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	for _, model := range []any{&domain.User{}, &domain.Message{}, &domain.Follower{}, &domain.Latest{}} {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if n != 0 {
			t.Fatalf("expected %T to be empty after Reset, got %d", model, n)
		}
	}
}

// Compile-time guard to ensure signature stability.
var _ func(context.Context, Options) (*gorm.DB, error) = Open
