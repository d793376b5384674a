package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/auth"
	"github.com/tbourn/go-minitwit/internal/repo"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.Open(context.Background(), repo.Options{
		Path: fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newAccounts(db *gorm.DB) *AccountService {
	return &AccountService{DB: db, Hasher: auth.NewHasher(auth.MinCost)}
}

func strp(s string) *string { return &s }

// mustRegister creates name with email name@example.com and password name.
func mustRegister(t *testing.T, accounts *AccountService, name string) uint {
	t.Helper()
	u, err := accounts.Register(context.Background(), Registration{
		Username: name, Email: name + "@example.com", Password: name,
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return u.UserID
}
