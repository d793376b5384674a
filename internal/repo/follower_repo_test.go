package repo

import (
	"context"
	"reflect"
	"testing"
)

func TestCreateFollower_IdempotentPair(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t)
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	created, err := CreateFollower(ctx, db, a.UserID, b.UserID)
	if err != nil || !created {
		t.Fatalf("first follow: created=%v err=%v", created, err)
	}
	created, err = CreateFollower(ctx, db, a.UserID, b.UserID)
	if err != nil || created {
		t.Fatalf("second follow should be a no-op: created=%v err=%v", created, err)
	}

	var n int64
	db.Table("followers").Where("who_id = ? AND whom_id = ?", a.UserID, b.UserID).Count(&n)
	if n != 1 {
		t.Fatalf("expected exactly one edge, got %d", n)
	}
}

func TestCreateFollower_UnknownUserViolatesFK(t *testing.T) {
	db := newRepoDB(t)
	a := seedUser(t, db, "a")
	if _, err := CreateFollower(context.Background(), db, a.UserID, 4242); err == nil {
		t.Fatalf("expected foreign key error for unknown target")
	}
}

func TestSelfFollow_Allowed(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t)
	a := seedUser(t, db, "a")

	if created, err := CreateFollower(ctx, db, a.UserID, a.UserID); err != nil || !created {
		t.Fatalf("self follow: created=%v err=%v", created, err)
	}
	if ok, _ := IsFollowing(ctx, db, a.UserID, a.UserID); !ok {
		t.Fatalf("expected self edge to exist")
	}
}

func TestDeleteFollower_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t)
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")

	if removed, err := DeleteFollower(ctx, db, a.UserID, b.UserID); err != nil || removed {
		t.Fatalf("unfollow without edge: removed=%v err=%v", removed, err)
	}

	before, _ := ListFollowedUsernames(ctx, db, a.UserID, 10)
	if _, err := CreateFollower(ctx, db, a.UserID, b.UserID); err != nil {
		t.Fatalf("CreateFollower: %v", err)
	}
	if ok, _ := IsFollowing(ctx, db, a.UserID, b.UserID); !ok {
		t.Fatalf("expected a to follow b")
	}
	if ok, _ := IsFollowing(ctx, db, b.UserID, a.UserID); ok {
		t.Fatalf("edges are directed; b must not follow a")
	}
	if removed, err := DeleteFollower(ctx, db, a.UserID, b.UserID); err != nil || !removed {
		t.Fatalf("unfollow: removed=%v err=%v", removed, err)
	}
	after, _ := ListFollowedUsernames(ctx, db, a.UserID, 10)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("follow/unfollow should round-trip: before=%v after=%v", before, after)
	}
}

func TestListFollowedUsernames_SetAndLimit(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t)
	a := seedUser(t, db, "a")
	for _, name := range []string{"c", "b", "d"} {
		u := seedUser(t, db, name)
		if _, err := CreateFollower(ctx, db, a.UserID, u.UserID); err != nil {
			t.Fatalf("follow %s: %v", name, err)
		}
	}

	all, err := ListFollowedUsernames(ctx, db, a.UserID, 100)
	if err != nil {
		t.Fatalf("ListFollowedUsernames: %v", err)
	}
	if !reflect.DeepEqual(all, []string{"b", "c", "d"}) {
		t.Fatalf("unexpected follows: %v", all)
	}
	two, _ := ListFollowedUsernames(ctx, db, a.UserID, 2)
	if len(two) != 2 {
		t.Fatalf("expected limit 2 to truncate, got %v", two)
	}
	none, _ := ListFollowedUsernames(ctx, db, a.UserID, 0)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice for limit 0, got %#v", none)
	}
}
