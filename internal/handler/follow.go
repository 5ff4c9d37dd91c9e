package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/auth"
	"github.com/sakif/twitter-clone/internal/service"
)

// FollowHandler serves the social-graph endpoints. All of them are
// self-scoped: the subject is always the authenticated caller.
type FollowHandler struct {
	follows *service.FollowService
	logger  *slog.Logger
}

// NewFollowHandler creates a FollowHandler.
func NewFollowHandler(follows *service.FollowService, logger *slog.Logger) *FollowHandler {
	return &FollowHandler{follows: follows, logger: logger}
}

// nameResponse is one entry in a following/followers listing.
type nameResponse struct {
	Name string `json:"name"`
}

func toNameResponses(names []string) []nameResponse {
	out := make([]nameResponse, 0, len(names))
	for _, name := range names {
		out = append(out, nameResponse{Name: name})
	}
	return out
}

// HandleFollowing lists the users the caller follows.
//
// GET /user/following
func (h *FollowHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	names, err := h.follows.Following(r.Context(), claim.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNameResponses(names))
}

// HandleFollowers lists the users following the caller.
//
// GET /user/followers
func (h *FollowHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	names, err := h.follows.Followers(r.Context(), claim.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNameResponses(names))
}

// HandleFollow makes the caller follow the named user.
//
// POST /user/following/{username}
func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	username := chi.URLParam(r, "username")
	if err := h.follows.Follow(r.Context(), claim.UserID, username); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "followed " + username})
}

// HandleUnfollow removes the caller's follow of the named user.
//
// DELETE /user/following/{username}
func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("invalid jwt token"))
		return
	}

	username := chi.URLParam(r, "username")
	if err := h.follows.Unfollow(r.Context(), claim.UserID, username); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "unfollowed " + username})
}
