package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/picstream/picstream-go/internal/apictx"
	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/handler/api"
)

func WithAssetID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "id")
			if raw == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			id, err := assetid.Parse(raw)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid asset ID", raw), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), apictx.AssetIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
