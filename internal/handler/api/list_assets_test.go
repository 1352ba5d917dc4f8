package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/mock"
	"github.com/picstream/picstream-go/internal/model"
)

func timelineAssets() []*model.Asset {
	return []*model.Asset{
		{
			ID:       assetid.New(),
			OwnerID:  "alice",
			MimeType: "image/png",
			Comment:  "first",
			State:    model.AssetStateReady,
			Renditions: model.Renditions{
				{ObjectKey: "renditions/a/a_200.webp", Width: 200, Height: 160},
			},
			UploadedAt: time.Now().UTC(),
		},
		{
			ID:         assetid.New(),
			OwnerID:    "bob",
			MimeType:   "image/jpeg",
			State:      model.AssetStateProcessing,
			UploadedAt: time.Now().UTC(),
		},
	}
}

func TestListLatestAssetsHandler(t *testing.T) {
	t.Run("happy path passes paging through", func(t *testing.T) {
		svc := &mock.AssetLister{Out: timelineAssets()}

		req := httptest.NewRequest(http.MethodGet, "/assets?limit=10&offset=5", nil)
		rr := httptest.NewRecorder()
		ListLatestAssetsHandler(svc).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
		}
		if svc.Limit != 10 || svc.Offset != 5 {
			t.Errorf("paging = (%d, %d); want (10, 5)", svc.Limit, svc.Offset)
		}

		var got []AssetSummary
		if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d; want 2", len(got))
		}
		if got[0].RenditionCount != 1 || got[1].RenditionCount != 0 {
			t.Errorf("unexpected rendition counts: %+v", got)
		}
	})

	t.Run("garbage paging params fall back to zero", func(t *testing.T) {
		svc := &mock.AssetLister{}

		req := httptest.NewRequest(http.MethodGet, "/assets?limit=abc&offset=", nil)
		rr := httptest.NewRecorder()
		ListLatestAssetsHandler(svc).ServeHTTP(rr, req)

		if svc.Limit != 0 || svc.Offset != 0 {
			t.Errorf("paging = (%d, %d); want (0, 0)", svc.Limit, svc.Offset)
		}
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &mock.AssetLister{Err: errors.New("boom")}

		req := httptest.NewRequest(http.MethodGet, "/assets", nil)
		rr := httptest.NewRecorder()
		ListLatestAssetsHandler(svc).ServeHTTP(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d; want %d", rr.Code, http.StatusInternalServerError)
		}
	})
}

func TestListOwnerAssetsHandler(t *testing.T) {
	withOwnerParam := func(req *http.Request, owner string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("ownerID", owner)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("happy path", func(t *testing.T) {
		svc := &mock.AssetLister{Out: timelineAssets()[:1]}

		req := withOwnerParam(httptest.NewRequest(http.MethodGet, "/owners/alice/assets", nil), "alice")
		rr := httptest.NewRecorder()
		ListOwnerAssetsHandler(svc).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rr.Code, http.StatusOK)
		}
		if svc.Owner != "alice" {
			t.Errorf("owner = %q; want %q", svc.Owner, "alice")
		}
	})

	t.Run("missing owner param", func(t *testing.T) {
		svc := &mock.AssetLister{}

		req := httptest.NewRequest(http.MethodGet, "/owners//assets", nil)
		rr := httptest.NewRecorder()
		ListOwnerAssetsHandler(svc).ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d; want %d", rr.Code, http.StatusBadRequest)
		}
		if svc.Called {
			t.Error("lister must not be called without an owner")
		}
	})
}
