package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/auth"
	"github.com/sakif/twitter-clone/internal/model"
	"github.com/sakif/twitter-clone/internal/service"
)

// TweetHandler serves the feed, the caller's own tweet listing, the tweet
// lifecycle, and the follow-gated detail/likes/replies endpoints. The gate
// itself lives in the service layer; handlers only translate HTTP.
type TweetHandler struct {
	tweets *service.TweetService
	logger *slog.Logger
}

// NewTweetHandler creates a TweetHandler.
func NewTweetHandler(tweets *service.TweetService, logger *slog.Logger) *TweetHandler {
	return &TweetHandler{tweets: tweets, logger: logger}
}

type createTweetRequest struct {
	Tweet string `json:"tweet"`
}

type replyRequest struct {
	Reply string `json:"reply"`
}

type likesResponse struct {
	Likes []string `json:"likes"`
}

type repliesResponse struct {
	Replies []model.Reply `json:"replies"`
}

// HandleFeed returns the caller's home feed: the newest tweets from users
// they follow, at most four.
//
// GET /user/tweets/feed
func (h *TweetHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	feed, err := h.tweets.Feed(r.Context(), claim.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feed)
}

// HandleUserTweets returns the caller's own tweets with engagement counts.
//
// GET /user/tweets
func (h *TweetHandler) HandleUserTweets(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	stats, err := h.tweets.UserTweets(r.Context(), claim.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleCreate posts a tweet as the caller.
//
// POST /user/tweets
// Body: {"tweet": "hello world"}
func (h *TweetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	var req createTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := h.tweets.Create(r.Context(), claim.UserID, req.Tweet); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "created a tweet"})
}

// HandleDelete removes the caller's own tweet. Deleting someone else's
// tweet — or a tweet that doesn't exist — reports the same 401.
//
// DELETE /tweets/{tweetID}
func (h *TweetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	if err := h.tweets.Delete(r.Context(), claim.UserID, chi.URLParam(r, "tweetID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "tweet removed"})
}

// HandleDetails returns a tweet's body and engagement counts, if the caller
// may see it.
//
// GET /tweets/{tweetID}
func (h *TweetHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	stats, err := h.tweets.Details(r.Context(), claim.UserID, chi.URLParam(r, "tweetID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleLikes lists usernames that liked the tweet, behind the gate.
//
// GET /tweets/{tweetID}/likes
func (h *TweetHandler) HandleLikes(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	likers, err := h.tweets.Likes(r.Context(), claim.UserID, chi.URLParam(r, "tweetID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, likesResponse{Likes: likers})
}

// HandleReplies lists the tweet's replies, behind the gate.
//
// GET /tweets/{tweetID}/replies
func (h *TweetHandler) HandleReplies(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	replies, err := h.tweets.Replies(r.Context(), claim.UserID, chi.URLParam(r, "tweetID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repliesResponse{Replies: replies})
}

// HandleLike records the caller's like on a tweet they can see. Liking a
// tweet twice is a no-op.
//
// POST /tweets/{tweetID}/likes
func (h *TweetHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	if err := h.tweets.Like(r.Context(), claim.UserID, chi.URLParam(r, "tweetID")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "tweet liked"})
}

// HandleReply records the caller's reply on a tweet they can see.
//
// POST /tweets/{tweetID}/replies
// Body: {"reply": "nice one"}
func (h *TweetHandler) HandleReply(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := h.tweets.Reply(r.Context(), claim.UserID, chi.URLParam(r, "tweetID"), req.Reply); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "replied to tweet"})
}
