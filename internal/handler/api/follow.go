package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/picstream/picstream-go/internal/apictx"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/usecase/follow"
)

type followingResponse struct {
	Following []string `json:"following"`
}

type isFollowingResponse struct {
	Following bool `json:"following"`
}

// FollowHandler records that the authenticated owner follows the owner named
// in the URL. Re-following is a no-op.
func FollowHandler(svc port.FollowManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID, followeeID, ok := followPair(w, r)
		if !ok {
			return
		}

		if err := svc.Follow(r.Context(), followerID, followeeID); err != nil {
			writeFollowError(w, err)
			return
		}

		log.Printf("✅  %q now follows %q", followerID, followeeID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// UnfollowHandler removes a follow edge. Removing a missing edge is a no-op.
func UnfollowHandler(svc port.FollowManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID, followeeID, ok := followPair(w, r)
		if !ok {
			return
		}

		if err := svc.Unfollow(r.Context(), followerID, followeeID); err != nil {
			writeFollowError(w, err)
			return
		}

		log.Printf("✅  %q no longer follows %q", followerID, followeeID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// IsFollowingHandler reports whether the authenticated owner currently
// follows the owner named in the URL.
func IsFollowingHandler(svc port.FollowManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID, followeeID, ok := followPair(w, r)
		if !ok {
			return
		}

		following, err := svc.IsFollowing(r.Context(), followerID, followeeID)
		if err != nil {
			writeFollowError(w, err)
			return
		}

		RespondJSON(w, http.StatusOK, isFollowingResponse{Following: following})
	}
}

// ListFollowingHandler returns the owners the authenticated owner follows.
func ListFollowingHandler(svc port.FollowManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		followerID, ok := apictx.OwnerIDFromContext(r.Context())
		if !ok || followerID == "" {
			WriteError(w, http.StatusUnauthorized, "Missing authenticated owner", nil)
			return
		}

		following, err := svc.ListFollowing(r.Context(), followerID)
		if err != nil {
			writeFollowError(w, err)
			return
		}
		if following == nil {
			following = []string{}
		}

		RespondJSON(w, http.StatusOK, followingResponse{Following: following})
	}
}

func followPair(w http.ResponseWriter, r *http.Request) (followerID, followeeID string, ok bool) {
	followerID, authed := apictx.OwnerIDFromContext(r.Context())
	if !authed || followerID == "" {
		WriteError(w, http.StatusUnauthorized, "Missing authenticated owner", nil)
		return "", "", false
	}
	followeeID = chi.URLParam(r, "followeeID")
	if followeeID == "" {
		WriteError(w, http.StatusBadRequest, "Followee ID is required", nil)
		return "", "", false
	}
	return followerID, followeeID, true
}

func writeFollowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, follow.ErrSelfFollow):
		WriteError(w, http.StatusBadRequest, "Owners cannot follow themselves", err)
	case errors.Is(err, follow.ErrEmptyOwner):
		WriteError(w, http.StatusBadRequest, "Owner ID is required", err)
	default:
		WriteError(w, http.StatusInternalServerError, "Failed to update follow graph", err)
	}
}
