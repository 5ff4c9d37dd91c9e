package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/twitter-clone/internal/repository"
)

// FollowDB implements repository.FollowRepository.
type FollowDB struct {
	conn *sql.DB
}

var _ repository.FollowRepository = (*FollowDB)(nil)

// Follow records a follower → following edge. INSERT OR IGNORE makes the
// edge idempotent: re-following is a silent no-op, and the composite primary
// key guarantees at most one row per pair, which keeps downstream counts
// honest.
func (db *FollowDB) Follow(ctx context.Context, followerID, followingID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO follows (follower_id, following_id) VALUES (?, ?)`,
		followerID, followingID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: following %s -> %s: %w", followerID, followingID, err)
	}
	return nil
}

// Unfollow removes the edge. Removing an absent edge is a no-op.
func (db *FollowDB) Unfollow(ctx context.Context, followerID, followingID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: unfollowing %s -> %s: %w", followerID, followingID, err)
	}
	return nil
}

// Following returns display names of the users this user follows.
func (db *FollowDB) Following(ctx context.Context, userID string) ([]string, error) {
	return db.followNames(ctx,
		`SELECT users.name
		 FROM follows
		 INNER JOIN users ON follows.following_id = users.id
		 WHERE follows.follower_id = ?
		 ORDER BY follows.created_at`,
		userID,
	)
}

// Followers returns display names of the users following this user.
func (db *FollowDB) Followers(ctx context.Context, userID string) ([]string, error) {
	return db.followNames(ctx,
		`SELECT users.name
		 FROM follows
		 INNER JOIN users ON follows.follower_id = users.id
		 WHERE follows.following_id = ?
		 ORDER BY follows.created_at`,
		userID,
	)
}

func (db *FollowDB) followNames(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying follow graph for %s: %w", userID, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning follow row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating follow rows: %w", err)
	}

	return names, nil
}
