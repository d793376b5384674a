package domain

import (
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Message{}, &Follower{}, &Latest{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(User{}).TableName():     "users",
		(Message{}).TableName():  "messages",
		(Follower{}).TableName(): "followers",
		(Latest{}).TableName():   "latest",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_TablesAndIndexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	for _, tbl := range []any{&User{}, &Message{}, &Follower{}, &Latest{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	for _, idx := range []string{"ux_users_username", "ux_users_email"} {
		if !m.HasIndex(&User{}, idx) {
			t.Fatalf("expected index %s on users", idx)
		}
	}
	if !m.HasIndex(&Message{}, "idx_messages_pub_date") {
		t.Fatalf("expected index idx_messages_pub_date on messages")
	}
	if !m.HasColumn(&Message{}, "pub_date") || !m.HasColumn(&User{}, "pw_hash") {
		t.Fatalf("expected snake_case columns pub_date / pw_hash")
	}
}

func TestConstraints_UniqueUsernameAndFollowerPair(t *testing.T) {
	db := newDomainDB(t)

	a := &User{Username: "a", Email: "a@a.a", PwHash: "x"}
	b := &User{Username: "b", Email: "b@b.b", PwHash: "x"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("insert b: %v", err)
	}
	if a.UserID == 0 || b.UserID == 0 || a.UserID == b.UserID {
		t.Fatalf("expected distinct generated ids, got %d and %d", a.UserID, b.UserID)
	}

	if err := db.Create(&User{Username: "a", Email: "other@x.y", PwHash: "x"}).Error; err == nil {
		t.Fatalf("expected unique violation on username")
	}
	if err := db.Create(&User{Username: "c", Email: "a@a.a", PwHash: "x"}).Error; err == nil {
		t.Fatalf("expected unique violation on email")
	}

	if err := db.Create(&Follower{WhoID: a.UserID, WhomID: b.UserID}).Error; err != nil {
		t.Fatalf("insert edge: %v", err)
	}
	if err := db.Create(&Follower{WhoID: a.UserID, WhomID: b.UserID}).Error; err == nil {
		t.Fatalf("expected primary key violation on duplicate edge")
	}
	// self-follow is a valid edge
	if err := db.Create(&Follower{WhoID: a.UserID, WhomID: a.UserID}).Error; err != nil {
		t.Fatalf("insert self edge: %v", err)
	}
}

func TestConstraints_ForeignKeys(t *testing.T) {
	db := newDomainDB(t)

	if err := db.Create(&Message{AuthorID: 999, Text: "orphan", PubDate: 1}).Error; err == nil {
		t.Fatalf("expected FK violation for unknown author")
	}
	if err := db.Create(&Follower{WhoID: 998, WhomID: 999}).Error; err == nil {
		t.Fatalf("expected FK violation for unknown users")
	}

	u := &User{Username: "u", Email: "u@u.u", PwHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	msg := &Message{AuthorID: u.UserID, Text: "hi", PubDate: 42}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("insert message: %v", err)
	}
	var got Message
	if err := db.First(&got, msg.MessageID).Error; err != nil {
		t.Fatalf("reload message: %v", err)
	}
	if got.Flagged != 0 || got.PubDate != 42 {
		t.Fatalf("unexpected stored message: %+v", got)
	}
}

func TestLatest_SingleRow(t *testing.T) {
	db := newDomainDB(t)
	if err := db.Create(&Latest{ID: LatestID, Value: 7}).Error; err != nil {
		t.Fatalf("insert latest: %v", err)
	}
	if err := db.Create(&Latest{ID: LatestID, Value: 8}).Error; err == nil {
		t.Fatalf("expected primary key violation on second latest row")
	}
	var l Latest
	if err := db.First(&l, LatestID).Error; err != nil {
		t.Fatalf("read latest: %v", err)
	}
	if l.Value != 7 {
		t.Fatalf("latest value = %d; want 7", l.Value)
	}
}
