package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/model"
	"github.com/sakif/twitter-clone/internal/repository"
)

// TweetDB implements repository.TweetRepository.
type TweetDB struct {
	conn *sql.DB
}

var _ repository.TweetRepository = (*TweetDB)(nil)

// Create inserts a tweet. The timestamp is assigned here, server-side — a
// client-supplied time could spoof feed ordering.
func (db *TweetDB) Create(ctx context.Context, tweet *model.Tweet) error {
	tweet.ID = xid.New().String()
	tweet.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tweets (id, user_id, body, created_at) VALUES (?, ?, ?, ?)`,
		tweet.ID,
		tweet.UserID,
		tweet.Body,
		tweet.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting tweet for user %s: %w", tweet.UserID, err)
	}

	return nil
}

// AuthorID returns the tweet's author, or apperror.ErrNotFound.
func (db *TweetDB) AuthorID(ctx context.Context, tweetID string) (string, error) {
	var authorID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id FROM tweets WHERE id = ?`, tweetID,
	).Scan(&authorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperror.NotFound("tweet", tweetID)
		}
		return "", fmt.Errorf("sqlite: getting tweet author %s: %w", tweetID, err)
	}
	return authorID, nil
}

// Delete removes the tweet. Likes and replies cascade via the schema's
// ON DELETE CASCADE, so the whole removal is one atomic statement.
func (db *TweetDB) Delete(ctx context.Context, tweetID string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM tweets WHERE id = ?`, tweetID)
	if err != nil {
		return fmt.Errorf("sqlite: deleting tweet %s: %w", tweetID, err)
	}
	return nil
}

// CanAccess is the authorization oracle for every tweet-scoped read: true
// iff the requester authored the tweet or follows its author. A tweet ID
// that doesn't exist matches neither branch, so the predicate fails closed
// without a separate existence check.
//
// It runs fresh on every call — the follow graph can change between
// requests, so the result is never cached.
func (db *TweetDB) CanAccess(ctx context.Context, requesterID, tweetID string) (bool, error) {
	var one int
	err := db.conn.QueryRowContext(ctx,
		`SELECT 1
		 FROM tweets
		 WHERE tweets.id = ?
		   AND (tweets.user_id = ?
		        OR EXISTS (
		            SELECT 1 FROM follows
		            WHERE follows.follower_id = ?
		              AND follows.following_id = tweets.user_id))`,
		tweetID, requesterID, requesterID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("sqlite: checking tweet access %s: %w", tweetID, err)
	}
	return true, nil
}

// Feed returns tweets authored by users the given user follows, newest
// first, truncated to limit.
//
// Ordering is created_at DESC only; equal timestamps fall back to the
// store's scan order. The (user_id, created_at) index on tweets keeps this
// from scanning the whole tweet table per request.
func (db *TweetDB) Feed(ctx context.Context, userID string, limit int) ([]model.FeedItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT users.username, tweets.body, tweets.created_at
		 FROM follows
		 INNER JOIN tweets ON follows.following_id = tweets.user_id
		 INNER JOIN users ON tweets.user_id = users.id
		 WHERE follows.follower_id = ?
		 ORDER BY tweets.created_at DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying feed for %s: %w", userID, err)
	}
	defer rows.Close()

	items := []model.FeedItem{}
	for rows.Next() {
		var item model.FeedItem
		if err := rows.Scan(&item.Username, &item.Body, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning feed row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating feed rows: %w", err)
	}

	return items, nil
}

// statsColumns aggregates likes and replies as two independent scalar
// subqueries. Joining both relations in one query and counting across the
// product would need COUNT(DISTINCT) to paper over the row multiplication;
// separate subqueries can't interfere with each other, and a tweet with no
// engagement reports plain zeros.
const statsColumns = `
	tweets.body,
	(SELECT COUNT(*) FROM likes   WHERE likes.tweet_id   = tweets.id) AS likes,
	(SELECT COUNT(*) FROM replies WHERE replies.tweet_id = tweets.id) AS replies,
	tweets.created_at`

// Stats returns one tweet's body with its engagement counts.
// Returns apperror.ErrNotFound if the tweet doesn't exist.
func (db *TweetDB) Stats(ctx context.Context, tweetID string) (*model.TweetStats, error) {
	var s model.TweetStats
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+statsColumns+` FROM tweets WHERE tweets.id = ?`,
		tweetID,
	).Scan(&s.Body, &s.Likes, &s.Replies, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("tweet", tweetID)
		}
		return nil, fmt.Errorf("sqlite: getting tweet stats %s: %w", tweetID, err)
	}
	return &s, nil
}

// StatsByAuthor returns engagement stats for every tweet the user posted,
// oldest first. This is the author's own listing, so no gate applies.
func (db *TweetDB) StatsByAuthor(ctx context.Context, userID string) ([]model.TweetStats, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+statsColumns+` FROM tweets WHERE tweets.user_id = ? ORDER BY tweets.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying tweets for %s: %w", userID, err)
	}
	defer rows.Close()

	stats := []model.TweetStats{}
	for rows.Next() {
		var s model.TweetStats
		if err := rows.Scan(&s.Body, &s.Likes, &s.Replies, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tweet stats row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tweet stats rows: %w", err)
	}

	return stats, nil
}

// Likers returns the usernames that liked the tweet.
func (db *TweetDB) Likers(ctx context.Context, tweetID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT users.username
		 FROM likes
		 INNER JOIN users ON likes.user_id = users.id
		 WHERE likes.tweet_id = ?
		 ORDER BY likes.created_at`,
		tweetID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying likes for %s: %w", tweetID, err)
	}
	defer rows.Close()

	usernames := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("sqlite: scanning like row: %w", err)
		}
		usernames = append(usernames, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating like rows: %w", err)
	}

	return usernames, nil
}

// Replies returns each replier's display name with their reply text.
func (db *TweetDB) Replies(ctx context.Context, tweetID string) ([]model.Reply, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT users.name, replies.body
		 FROM replies
		 INNER JOIN users ON replies.user_id = users.id
		 WHERE replies.tweet_id = ?
		 ORDER BY replies.created_at`,
		tweetID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying replies for %s: %w", tweetID, err)
	}
	defer rows.Close()

	replies := []model.Reply{}
	for rows.Next() {
		var r model.Reply
		if err := rows.Scan(&r.Name, &r.Body); err != nil {
			return nil, fmt.Errorf("sqlite: scanning reply row: %w", err)
		}
		replies = append(replies, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reply rows: %w", err)
	}

	return replies, nil
}

// Like records that a user liked a tweet. INSERT OR IGNORE plus the
// UNIQUE(user_id, tweet_id) index make repeat likes a no-op, so a user can
// never count twice against the same tweet.
func (db *TweetDB) Like(ctx context.Context, userID, tweetID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO likes (id, user_id, tweet_id) VALUES (?, ?, ?)`,
		xid.New().String(), userID, tweetID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: liking tweet %s: %w", tweetID, err)
	}
	return nil
}

// Reply records a reply on a tweet.
func (db *TweetDB) Reply(ctx context.Context, userID, tweetID, body string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO replies (id, user_id, tweet_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		xid.New().String(), userID, tweetID, body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: replying to tweet %s: %w", tweetID, err)
	}
	return nil
}
