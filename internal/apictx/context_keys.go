package apictx

import (
	"context"

	"github.com/picstream/picstream-go/internal/assetid"
)

type ctxKey string

const (
	AssetIDKey ctxKey = "assetID"
	OwnerIDKey ctxKey = "ownerID"
)

func AssetIDFromContext(ctx context.Context) (assetid.ID, bool) {
	id, ok := ctx.Value(AssetIDKey).(assetid.ID)
	return id, ok
}

func OwnerIDFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerIDKey).(string)
	return owner, ok
}
