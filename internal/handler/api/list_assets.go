package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

// AssetSummary is one timeline entry. It deliberately omits object keys and
// presigned links; clients fetch those per asset.
type AssetSummary struct {
	ID             assetid.ID       `json:"id"`
	OwnerID        string           `json:"owner_id"`
	MimeType       string           `json:"mime_type"`
	Comment        string           `json:"comment"`
	State          model.AssetState `json:"state"`
	RenditionCount int              `json:"rendition_count"`
	UploadedAt     time.Time        `json:"uploaded_at"`
}

// ListLatestAssetsHandler returns the newest assets across all owners.
func ListLatestAssetsHandler(svc port.AssetLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pageParams(r)

		assets, err := svc.ListLatest(r.Context(), limit, offset)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to list assets", err)
			return
		}

		log.Printf("✅  Returning %d timeline entries", len(assets))
		RespondJSON(w, http.StatusOK, toSummaries(assets))
	}
}

// ListOwnerAssetsHandler returns the newest assets of one owner.
func ListOwnerAssetsHandler(svc port.AssetLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := chi.URLParam(r, "ownerID")
		if ownerID == "" {
			WriteError(w, http.StatusBadRequest, "Owner ID is required", nil)
			return
		}
		limit, offset := pageParams(r)

		assets, err := svc.ListByOwner(r.Context(), ownerID, limit, offset)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to list assets", err)
			return
		}

		log.Printf("✅  Returning %d timeline entries for owner %q", len(assets), ownerID)
		RespondJSON(w, http.StatusOK, toSummaries(assets))
	}
}

// pageParams reads limit/offset query parameters, tolerating garbage. The
// use case clamps the actual values.
func pageParams(r *http.Request) (limit, offset int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		offset = v
	}
	return limit, offset
}

func toSummaries(assets []*model.Asset) []AssetSummary {
	out := make([]AssetSummary, 0, len(assets))
	for _, a := range assets {
		out = append(out, AssetSummary{
			ID:             a.ID,
			OwnerID:        a.OwnerID,
			MimeType:       a.MimeType,
			Comment:        a.Comment,
			State:          a.State,
			RenditionCount: len(a.Renditions),
			UploadedAt:     a.UploadedAt,
		})
	}
	return out
}
