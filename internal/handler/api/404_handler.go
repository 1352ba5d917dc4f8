package api

import "net/http"

// NotFoundHandler is the router-level fallback for unknown paths. It keeps the
// error envelope consistent with every other endpoint.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such endpoint"})
	}
}
