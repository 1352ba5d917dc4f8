package api

import "net/http"

// MethodNotAllowedHandler answers requests that hit a known path with the
// wrong verb.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed on this endpoint"})
	}
}
