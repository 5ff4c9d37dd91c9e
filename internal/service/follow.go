package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/repository"
)

// FollowService manages the social graph: creating and removing follow
// edges, and the two directional views over them.
type FollowService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	logger  *slog.Logger
}

// NewFollowService creates a FollowService.
func NewFollowService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *FollowService {
	return &FollowService{
		follows: follows,
		users:   users,
		logger:  logger,
	}
}

// Following returns display names of the users this user follows.
func (s *FollowService) Following(ctx context.Context, userID string) ([]string, error) {
	names, err := s.follows.Following(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/follow: listing following for %s: %w", userID, err)
	}
	return names, nil
}

// Followers returns display names of the users following this user.
func (s *FollowService) Followers(ctx context.Context, userID string) ([]string, error) {
	names, err := s.follows.Followers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/follow: listing followers for %s: %w", userID, err)
	}
	return names, nil
}

// Follow makes userID follow the user with the given username. Unknown
// target and self-follow are Validation errors; re-following is a no-op.
func (s *FollowService) Follow(ctx context.Context, userID, targetUsername string) error {
	target, err := s.resolveTarget(ctx, userID, targetUsername)
	if err != nil {
		return err
	}

	if err := s.follows.Follow(ctx, userID, target); err != nil {
		return fmt.Errorf("service/follow: following %q: %w", targetUsername, err)
	}

	s.logger.Info("follow edge added",
		slog.String("followerID", userID),
		slog.String("followingID", target),
	)

	return nil
}

// Unfollow removes the edge from userID to the named user.
func (s *FollowService) Unfollow(ctx context.Context, userID, targetUsername string) error {
	target, err := s.resolveTarget(ctx, userID, targetUsername)
	if err != nil {
		return err
	}

	if err := s.follows.Unfollow(ctx, userID, target); err != nil {
		return fmt.Errorf("service/follow: unfollowing %q: %w", targetUsername, err)
	}

	s.logger.Info("follow edge removed",
		slog.String("followerID", userID),
		slog.String("followingID", target),
	)

	return nil
}

// resolveTarget maps a username to a user ID and rejects self-references.
func (s *FollowService) resolveTarget(ctx context.Context, userID, targetUsername string) (string, error) {
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.ValidationFailed("username", "invalid user")
		}
		return "", fmt.Errorf("service/follow: resolving user %q: %w", targetUsername, err)
	}
	if target.ID == userID {
		return "", apperror.ValidationFailed("username", "cannot follow yourself")
	}
	return target.ID, nil
}
