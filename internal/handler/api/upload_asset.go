package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/picstream/picstream-go/internal/apictx"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/usecase/asset"
)

// UploadAssetHandler accepts a multipart upload and hands it to the intake
// use case. A 202 means the original is stored and the processing job is
// durably queued; renditions arrive later via the websocket push.
func UploadAssetHandler(svc port.AssetSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := apictx.OwnerIDFromContext(r.Context())
		if !ok || ownerID == "" {
			WriteError(w, http.StatusUnauthorized, "Missing authenticated owner", nil)
			return
		}

		if err := r.ParseMultipartForm(asset.MaxFileSize); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid multipart payload", err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Field 'file' is required", err)
			return
		}
		defer func() { _ = file.Close() }()

		out, err := svc.SubmitAsset(r.Context(), port.SubmitAssetInput{
			Reader:           file,
			DeclaredMimeType: header.Header.Get("Content-Type"),
			OwnerID:          ownerID,
			Comment:          r.FormValue("comment"),
		})
		if err != nil {
			switch {
			case errors.Is(err, asset.ErrUnsupportedType):
				WriteError(w, http.StatusUnsupportedMediaType, "Unsupported media type", err)
			case errors.Is(err, asset.ErrInvalidSize):
				WriteError(w, http.StatusBadRequest, "File size out of bounds", err)
			default:
				WriteError(w, http.StatusInternalServerError, "Failed to accept upload", err)
			}
			return
		}

		log.Printf("✅  Accepted asset #%s for processing", out.ID)
		RespondJSON(w, http.StatusAccepted, out)
	}
}
