package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/picstream/picstream-go/internal/apictx"
	"github.com/picstream/picstream-go/internal/assetid"
	"github.com/picstream/picstream-go/internal/mock"
	"github.com/picstream/picstream-go/internal/port"
	"github.com/picstream/picstream-go/internal/usecase/asset"
)

func TestDeleteAssetHandler(t *testing.T) {
	validID := assetid.New()

	tests := []struct {
		name        string
		ctxID       *assetid.ID
		ownerID     string
		assetOwner  string
		getterErr   error
		deleterErr  error
		wantStatus  int
		wantDeleted bool
	}{
		{"happy path", &validID, "alice", "alice", nil, nil, http.StatusNoContent, true},
		{"missing context id", nil, "alice", "alice", nil, nil, http.StatusInternalServerError, false},
		{"missing owner", &validID, "", "alice", nil, nil, http.StatusUnauthorized, false},
		{"not the owner", &validID, "bob", "alice", nil, nil, http.StatusForbidden, false},
		{"unknown asset", &validID, "alice", "alice", asset.ErrNotFound, nil, http.StatusNotFound, false},
		{"ownership check failure", &validID, "alice", "alice", errors.New("boom"), nil, http.StatusInternalServerError, false},
		{"delete failure", &validID, "alice", "alice", nil, errors.New("boom"), http.StatusInternalServerError, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			getter := &mock.AssetGetter{
				Out: &port.GetAssetOutput{ID: validID, OwnerID: tc.assetOwner},
				Err: tc.getterErr,
			}
			deleter := &mock.AssetDeleter{Err: tc.deleterErr}

			req := httptest.NewRequest(http.MethodDelete, "/assets/"+validID.String(), nil)
			ctx := req.Context()
			if tc.ctxID != nil {
				ctx = context.WithValue(ctx, apictx.AssetIDKey, *tc.ctxID)
			}
			if tc.ownerID != "" {
				ctx = context.WithValue(ctx, apictx.OwnerIDKey, tc.ownerID)
			}
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			DeleteAssetHandler(getter, deleter).ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", rr.Code, tc.wantStatus)
			}
			if deleter.Called != tc.wantDeleted {
				t.Errorf("deleter called = %v; want %v", deleter.Called, tc.wantDeleted)
			}
			if tc.wantDeleted && deleter.ID != validID {
				t.Errorf("deleted id = %s; want %s", deleter.ID, validID)
			}
		})
	}
}
