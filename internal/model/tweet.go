package model

import "time"

// Tweet is a single post. It is owned exclusively by its author: created by
// the author with a server-assigned timestamp, deleted only by the author.
type Tweet struct {
	ID        string    `json:"id"       db:"id"`
	UserID    string    `json:"userId"   db:"user_id"`
	Body      string    `json:"tweet"    db:"body"`
	CreatedAt time.Time `json:"dateTime" db:"created_at"`
}

// Reply is one reply on a tweet, joined with the replier's display name.
type Reply struct {
	Name string `json:"name"`
	Body string `json:"reply"`
}

// FeedItem is one entry in a user's home feed: a tweet authored by someone
// the user follows, tagged with the author's handle.
type FeedItem struct {
	Username  string    `json:"username"`
	Body      string    `json:"tweet"`
	CreatedAt time.Time `json:"dateTime"`
}

// TweetStats is a tweet with its aggregated engagement counts.
//
// Likes and Replies are plain ints, never pointers: a tweet with no
// engagement reports 0, not null. The two counts come from independent
// aggregations over the likes and replies relations — one kind of
// engagement never inflates or suppresses the other.
type TweetStats struct {
	Body      string    `json:"tweet"`
	Likes     int       `json:"likes"`
	Replies   int       `json:"replies"`
	CreatedAt time.Time `json:"dateTime"`
}
