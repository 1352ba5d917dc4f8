package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/picstream/picstream-go/internal/apictx"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/renderer"
	"github.com/picstream/picstream-go/internal/usecase/asset"
)

// GetAssetHandler returns the details of an asset, presigned download links
// included. Responses for settled assets come out of the renderer's cache
// with an ETag so clients can revalidate cheaply.
func GetAssetHandler(rdr renderer.HTTPRenderer, svc port.AssetGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := apictx.AssetIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusInternalServerError, "Asset ID not found in request context", nil)
			return
		}

		raw, etag, err := rdr.RenderGetAsset(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, asset.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Asset not found", err)
			} else {
				WriteError(w, http.StatusInternalServerError, "Failed to get asset details", err)
			}
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "private, max-age=300, must-revalidate")
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			log.Printf("✅  Asset #%s unchanged, returning 304", id)
			w.WriteHeader(http.StatusNotModified)
			return
		}

		log.Printf("✅  Returning details for asset #%s", id)
		RespondRawJSON(w, http.StatusOK, raw)
	}
}

// GetRenditionsHandler lists the stored renditions of a ready asset without
// generating download links.
func GetRenditionsHandler(svc port.AssetGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := apictx.AssetIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusInternalServerError, "Asset ID not found in request context", nil)
			return
		}

		renditions, err := svc.GetRenditions(r.Context(), id)
		if err != nil {
			if errors.Is(err, asset.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Asset not found", err)
			} else {
				WriteError(w, http.StatusInternalServerError, "Failed to list renditions", err)
			}
			return
		}

		log.Printf("✅  Returning %d renditions for asset #%s", len(renditions), id)
		RespondJSON(w, http.StatusOK, renditions)
	}
}
