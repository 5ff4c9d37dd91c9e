package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/model"
	"github.com/sakif/twitter-clone/internal/repository"
)

const (
	// FeedWindow is the fixed maximum number of tweets in a home feed.
	FeedWindow = 4

	// MaxTweetLength bounds the tweet body.
	MaxTweetLength = 280
)

// TweetService handles the tweet lifecycle, the follow-gated reads, the home
// feed, and engagement.
type TweetService struct {
	tweets repository.TweetRepository
	logger *slog.Logger
}

// NewTweetService creates a TweetService.
func NewTweetService(tweets repository.TweetRepository, logger *slog.Logger) *TweetService {
	return &TweetService{
		tweets: tweets,
		logger: logger,
	}
}

// authorize is the follow gate guarding every tweet-scoped read and
// engagement write. Whatever the reason — requester doesn't follow the
// author, or the tweet doesn't exist at all — the caller gets the same
// Unauthorized error, so probing tweet IDs reveals nothing.
func (s *TweetService) authorize(ctx context.Context, requesterID, tweetID string) error {
	ok, err := s.tweets.CanAccess(ctx, requesterID, tweetID)
	if err != nil {
		return fmt.Errorf("service/tweet: checking access to %s: %w", tweetID, err)
	}
	if !ok {
		return apperror.Unauthorized()
	}
	return nil
}

// Feed returns the newest tweets from users this user follows, at most
// FeedWindow items.
func (s *TweetService) Feed(ctx context.Context, userID string) ([]model.FeedItem, error) {
	feed, err := s.tweets.Feed(ctx, userID, FeedWindow)
	if err != nil {
		return nil, fmt.Errorf("service/tweet: assembling feed for %s: %w", userID, err)
	}
	return feed, nil
}

// Create posts a tweet for the given author. The repository assigns the id
// and the timestamp — client-supplied times could spoof feed ordering.
func (s *TweetService) Create(ctx context.Context, authorID, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return apperror.ValidationFailed("tweet", "tweet body is required")
	}
	if len(body) > MaxTweetLength {
		return apperror.ValidationFailed("tweet",
			fmt.Sprintf("tweet must be %d characters or less", MaxTweetLength))
	}

	tweet := &model.Tweet{UserID: authorID, Body: body}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return fmt.Errorf("service/tweet: creating tweet for %s: %w", authorID, err)
	}

	s.logger.Info("tweet created",
		slog.String("tweetID", tweet.ID),
		slog.String("userID", authorID),
	)

	return nil
}

// Delete removes the requester's own tweet; likes and replies go with it.
// A requester who isn't the owner gets the same Unauthorized as a tweet that
// doesn't exist.
func (s *TweetService) Delete(ctx context.Context, requesterID, tweetID string) error {
	authorID, err := s.tweets.AuthorID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.Unauthorized()
		}
		return fmt.Errorf("service/tweet: looking up tweet %s: %w", tweetID, err)
	}
	if authorID != requesterID {
		return apperror.Unauthorized()
	}

	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return fmt.Errorf("service/tweet: deleting tweet %s: %w", tweetID, err)
	}

	s.logger.Info("tweet deleted",
		slog.String("tweetID", tweetID),
		slog.String("userID", requesterID),
	)

	return nil
}

// Details returns a tweet's body and engagement counts, behind the gate.
func (s *TweetService) Details(ctx context.Context, requesterID, tweetID string) (*model.TweetStats, error) {
	if err := s.authorize(ctx, requesterID, tweetID); err != nil {
		return nil, err
	}

	stats, err := s.tweets.Stats(ctx, tweetID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Deleted between the gate check and the read; keep the
			// non-distinguishing answer.
			return nil, apperror.Unauthorized()
		}
		return nil, fmt.Errorf("service/tweet: fetching stats for %s: %w", tweetID, err)
	}
	return stats, nil
}

// UserTweets returns engagement stats for every tweet the user posted. This
// is the author's own listing — inherently self-scoped, so no gate.
func (s *TweetService) UserTweets(ctx context.Context, userID string) ([]model.TweetStats, error) {
	stats, err := s.tweets.StatsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/tweet: listing tweets for %s: %w", userID, err)
	}
	return stats, nil
}

// Likes returns usernames that liked the tweet, behind the gate.
func (s *TweetService) Likes(ctx context.Context, requesterID, tweetID string) ([]string, error) {
	if err := s.authorize(ctx, requesterID, tweetID); err != nil {
		return nil, err
	}

	likers, err := s.tweets.Likers(ctx, tweetID)
	if err != nil {
		return nil, fmt.Errorf("service/tweet: listing likes for %s: %w", tweetID, err)
	}
	return likers, nil
}

// Replies returns the tweet's replies, behind the gate.
func (s *TweetService) Replies(ctx context.Context, requesterID, tweetID string) ([]model.Reply, error) {
	if err := s.authorize(ctx, requesterID, tweetID); err != nil {
		return nil, err
	}

	replies, err := s.tweets.Replies(ctx, tweetID)
	if err != nil {
		return nil, fmt.Errorf("service/tweet: listing replies for %s: %w", tweetID, err)
	}
	return replies, nil
}

// Like records a like, behind the gate: a user can only like tweets they
// can see. Liking twice is a no-op.
func (s *TweetService) Like(ctx context.Context, requesterID, tweetID string) error {
	if err := s.authorize(ctx, requesterID, tweetID); err != nil {
		return err
	}

	if err := s.tweets.Like(ctx, requesterID, tweetID); err != nil {
		return fmt.Errorf("service/tweet: liking tweet %s: %w", tweetID, err)
	}

	s.logger.Info("tweet liked",
		slog.String("tweetID", tweetID),
		slog.String("userID", requesterID),
	)

	return nil
}

// Reply records a reply, behind the gate.
func (s *TweetService) Reply(ctx context.Context, requesterID, tweetID, body string) error {
	if err := s.authorize(ctx, requesterID, tweetID); err != nil {
		return err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return apperror.ValidationFailed("reply", "reply body is required")
	}
	if len(body) > MaxTweetLength {
		return apperror.ValidationFailed("reply",
			fmt.Sprintf("reply must be %d characters or less", MaxTweetLength))
	}

	if err := s.tweets.Reply(ctx, requesterID, tweetID, body); err != nil {
		return fmt.Errorf("service/tweet: replying to tweet %s: %w", tweetID, err)
	}

	s.logger.Info("tweet replied",
		slog.String("tweetID", tweetID),
		slog.String("userID", requesterID),
	)

	return nil
}
