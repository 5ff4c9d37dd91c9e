// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite — a pure Go translation of SQLite, so the
// binary builds without CGo and cross-compiles anywhere Go runs. For tests,
// ":memory:" gives every test its own throwaway database.
//
// Two pragmas are set per pool:
//   - journal_mode=WAL: readers proceed concurrently with a writer, which a
//     request-per-goroutine HTTP server needs.
//   - foreign_keys=ON: SQLite ships with referential integrity off; we rely
//     on it for ON DELETE CASCADE from tweets to likes and replies.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init().
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-aggregate repositories hang off
// it via Users, Follows, and Tweets, all sharing the same pool.
type DB struct {
	conn *sql.DB
}

// Users returns the user repository view of this database.
func (db *DB) Users() *UserDB { return &UserDB{conn: db.conn} }

// Follows returns the follow-graph repository view of this database.
func (db *DB) Follows() *FollowDB { return &FollowDB{conn: db.conn} }

// Tweets returns the tweet repository view of this database.
func (db *DB) Tweets() *TweetDB { return &TweetDB{conn: db.conn} }

// New opens the database at dbPath (":memory:" for an in-memory instance),
// configures pragmas, and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each pooled connection to ":memory:" would get its own private
	// database, so the schema created below would vanish on the next
	// checkout. Pin the pool to a single connection in that case.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Force an immediate connection so a bad path surfaces here, not on
	// the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers defer this right after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent,
// so it is safe to run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			gender        TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// The composite primary key makes re-following a conflict, which
	// Follow treats as a no-op — the edge is idempotent.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS follows (
			follower_id  TEXT NOT NULL REFERENCES users(id),
			following_id TEXT NOT NULL REFERENCES users(id),
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (follower_id, following_id)
		);
		CREATE INDEX IF NOT EXISTS idx_follows_following ON follows(following_id);
	`)
	if err != nil {
		return fmt.Errorf("creating follows table: %w", err)
	}

	// (user_id, created_at) is the feed's access path: the feed query scans
	// tweets of followed authors newest-first, so without this index every
	// feed request walks the whole table.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS tweets (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			body       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_tweets_user_created ON tweets(user_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating tweets table: %w", err)
	}

	// ON DELETE CASCADE: deleting a tweet removes its likes and replies in
	// the same statement, so application code never sees a partial delete.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS likes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			tweet_id   TEXT NOT NULL REFERENCES tweets(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, tweet_id)
		);
		CREATE INDEX IF NOT EXISTS idx_likes_tweet ON likes(tweet_id);
	`)
	if err != nil {
		return fmt.Errorf("creating likes table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS replies (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			tweet_id   TEXT NOT NULL REFERENCES tweets(id) ON DELETE CASCADE,
			body       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replies_tweet ON replies(tweet_id);
	`)
	if err != nil {
		return fmt.Errorf("creating replies table: %w", err)
	}

	return nil
}
