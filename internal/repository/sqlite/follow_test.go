package sqlite

import (
	"context"
	"testing"
)

func TestFollowAndFollowing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	follow(t, db, bob.ID, alice.ID)
	follow(t, db, bob.ID, carol.ID)

	following, err := db.Follows().Following(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 2 {
		t.Fatalf("Following() returned %d names, want 2", len(following))
	}
	if following[0] != "alice Example" || following[1] != "carol Example" {
		t.Errorf("Following() = %v, want alice then carol", following)
	}
}

func TestFollowers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	follow(t, db, bob.ID, alice.ID)
	follow(t, db, carol.ID, alice.ID)

	followers, err := db.Follows().Followers(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Followers() error = %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("Followers() returned %d names, want 2", len(followers))
	}

	// Nobody follows bob.
	followers, err = db.Follows().Followers(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Followers() error = %v", err)
	}
	if len(followers) != 0 {
		t.Errorf("Followers() for bob = %v, want empty", followers)
	}
}

func TestFollow_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	follow(t, db, bob.ID, alice.ID)
	follow(t, db, bob.ID, alice.ID) // duplicate edge is a no-op

	following, err := db.Follows().Following(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 1 {
		t.Errorf("duplicate Follow() created %d edges, want 1", len(following))
	}
}

func TestUnfollow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	follow(t, db, bob.ID, alice.ID)

	if err := db.Follows().Unfollow(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}

	following, err := db.Follows().Following(ctx, bob.ID)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 0 {
		t.Errorf("Following() after unfollow = %v, want empty", following)
	}

	// Unfollowing an absent edge is a no-op, not an error.
	if err := db.Follows().Unfollow(ctx, bob.ID, alice.ID); err != nil {
		t.Errorf("Unfollow() of absent edge error = %v", err)
	}
}

func TestFollowIsDirectional(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	follow(t, db, bob.ID, alice.ID)

	// bob follows alice; alice does not follow bob.
	following, err := db.Follows().Following(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 0 {
		t.Errorf("Following() for alice = %v, want empty (edge is directional)", following)
	}
}
