package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/picstream/picstream-go/internal/apictx"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/usecase/asset"
)

// DeleteAssetHandler removes an asset, its original and every rendition.
// Only the owner may delete; anyone else gets a 403.
func DeleteAssetHandler(getter port.AssetGetter, svc port.AssetDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := apictx.AssetIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusInternalServerError, "Asset ID not found in request context", nil)
			return
		}
		ownerID, ok := apictx.OwnerIDFromContext(r.Context())
		if !ok || ownerID == "" {
			WriteError(w, http.StatusUnauthorized, "Missing authenticated owner", nil)
			return
		}

		details, err := getter.GetAsset(r.Context(), id)
		if err != nil {
			if errors.Is(err, asset.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Asset not found", err)
			} else {
				WriteError(w, http.StatusInternalServerError, "Failed to check asset ownership", err)
			}
			return
		}
		if details.OwnerID != ownerID {
			WriteError(w, http.StatusForbidden, "Only the owner can delete an asset", nil)
			return
		}

		if err := svc.DeleteAsset(r.Context(), id); err != nil {
			if errors.Is(err, asset.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Asset not found", err)
			} else {
				WriteError(w, http.StatusInternalServerError, "Failed to delete asset", err)
			}
			return
		}

		log.Printf("✅  Deleted asset #%s", id)
		w.WriteHeader(http.StatusNoContent)
	}
}
