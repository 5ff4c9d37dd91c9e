// Package repository declares the storage interfaces consumed by the service
// layer. Services depend on these interfaces, never on the sqlite package, so
// tests substitute in-memory fakes and the backend can change without
// touching business rules.
package repository

import (
	"context"

	"github.com/sakif/twitter-clone/internal/model"
)

// UserRepository persists account records. Usernames are unique; the storage
// backend enforces that with a unique index, so a concurrent duplicate
// registration loses at the INSERT even if it passed the service's pre-check.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// FollowRepository is the directed follower/following relation.
type FollowRepository interface {
	// Follow records follower → following. Re-following is a no-op, and
	// self-follows are rejected by the service before reaching storage.
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	// Following returns display names of users the given user follows;
	// Followers is the reverse direction.
	Following(ctx context.Context, userID string) ([]string, error)
	Followers(ctx context.Context, userID string) ([]string, error)
}

// TweetRepository persists tweets and their engagement, and answers the two
// graph-shaped reads of the core: the per-request access predicate and the
// bounded home feed.
type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	// AuthorID returns the tweet's author, or apperror.ErrNotFound.
	AuthorID(ctx context.Context, tweetID string) (string, error)
	// Delete removes the tweet; likes and replies cascade in storage.
	Delete(ctx context.Context, tweetID string) error

	// CanAccess reports whether requester may read the tweet: true iff the
	// requester authored it or follows its author. A nonexistent tweet is
	// simply false — the predicate fails closed.
	CanAccess(ctx context.Context, requesterID, tweetID string) (bool, error)

	// Feed returns tweets authored by users the given user follows, newest
	// first, at most limit items.
	Feed(ctx context.Context, userID string, limit int) ([]model.FeedItem, error)

	// Stats aggregates like and reply counts for one tweet;
	// StatsByAuthor does the same for every tweet the author has posted.
	Stats(ctx context.Context, tweetID string) (*model.TweetStats, error)
	StatsByAuthor(ctx context.Context, userID string) ([]model.TweetStats, error)

	// Likers returns usernames that liked the tweet; Replies returns each
	// replier's display name with their reply text.
	Likers(ctx context.Context, tweetID string) ([]string, error)
	Replies(ctx context.Context, tweetID string) ([]model.Reply, error)

	// Like and Reply record engagement. Liking twice is a no-op so counts
	// stay idempotent.
	Like(ctx context.Context, userID, tweetID string) error
	Reply(ctx context.Context, userID, tweetID, body string) error
}
