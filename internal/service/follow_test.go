package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/model"
)

// fakeFollowRepo is an in-memory repository.FollowRepository. Display names
// for the directional views come from the names map (id → name).
type fakeFollowRepo struct {
	edges map[[2]string]bool
	names map[string]string
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{
		edges: make(map[[2]string]bool),
		names: make(map[string]string),
	}
}

func (f *fakeFollowRepo) Follow(ctx context.Context, followerID, followingID string) error {
	f.edges[[2]string{followerID, followingID}] = true
	return nil
}

func (f *fakeFollowRepo) Unfollow(ctx context.Context, followerID, followingID string) error {
	delete(f.edges, [2]string{followerID, followingID})
	return nil
}

func (f *fakeFollowRepo) Following(ctx context.Context, userID string) ([]string, error) {
	names := []string{}
	for edge := range f.edges {
		if edge[0] == userID {
			names = append(names, f.names[edge[1]])
		}
	}
	return names, nil
}

func (f *fakeFollowRepo) Followers(ctx context.Context, userID string) ([]string, error) {
	names := []string{}
	for edge := range f.edges {
		if edge[1] == userID {
			names = append(names, f.names[edge[0]])
		}
	}
	return names, nil
}

// newTestFollowService returns the service with fakes plus the user fake so
// tests can register targets to follow.
func newTestFollowService(t *testing.T) (*FollowService, *fakeFollowRepo, *fakeUserRepo) {
	t.Helper()
	follows := newFakeFollowRepo()
	users := newFakeUserRepo()
	return NewFollowService(follows, users, newTestLogger()), follows, users
}

// registerUser adds a user to the fakes and returns their ID.
func registerUser(t *testing.T, users *fakeUserRepo, follows *fakeFollowRepo, username, name string) string {
	t.Helper()
	user := &model.User{Username: username, Name: name, PasswordHash: "irrelevant"}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("creating user %q: %v", username, err)
	}
	follows.names[user.ID] = name
	return user.ID
}

func TestFollowByUsername(t *testing.T) {
	svc, follows, users := newTestFollowService(t)
	ctx := context.Background()

	bobID := registerUser(t, users, follows, "bob", "Bob Example")
	registerUser(t, users, follows, "alice", "Alice Example")

	if err := svc.Follow(ctx, bobID, "alice"); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	following, err := svc.Following(ctx, bobID)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 1 || following[0] != "Alice Example" {
		t.Errorf("Following() = %v, want [Alice Example]", following)
	}
}

func TestFollow_UnknownTarget(t *testing.T) {
	svc, follows, users := newTestFollowService(t)

	bobID := registerUser(t, users, follows, "bob", "Bob Example")

	err := svc.Follow(context.Background(), bobID, "nobody")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Follow() error = %v, want ErrValidation", err)
	}
}

func TestFollow_Self(t *testing.T) {
	svc, follows, users := newTestFollowService(t)

	bobID := registerUser(t, users, follows, "bob", "Bob Example")

	err := svc.Follow(context.Background(), bobID, "bob")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("self Follow() error = %v, want ErrValidation", err)
	}
}

func TestUnfollow(t *testing.T) {
	svc, follows, users := newTestFollowService(t)
	ctx := context.Background()

	bobID := registerUser(t, users, follows, "bob", "Bob Example")
	registerUser(t, users, follows, "alice", "Alice Example")

	if err := svc.Follow(ctx, bobID, "alice"); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if err := svc.Unfollow(ctx, bobID, "alice"); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}

	following, err := svc.Following(ctx, bobID)
	if err != nil {
		t.Fatalf("Following() error = %v", err)
	}
	if len(following) != 0 {
		t.Errorf("Following() after unfollow = %v, want empty", following)
	}
}

func TestFollowers(t *testing.T) {
	svc, follows, users := newTestFollowService(t)
	ctx := context.Background()

	aliceID := registerUser(t, users, follows, "alice", "Alice Example")
	bobID := registerUser(t, users, follows, "bob", "Bob Example")

	if err := svc.Follow(ctx, bobID, "alice"); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	followers, err := svc.Followers(ctx, aliceID)
	if err != nil {
		t.Fatalf("Followers() error = %v", err)
	}
	if len(followers) != 1 || followers[0] != "Bob Example" {
		t.Errorf("Followers() = %v, want [Bob Example]", followers)
	}
}
