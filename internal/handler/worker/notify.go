package worker

import (
	"context"
	"log"

	"github.com/picstream/picstream-go/internal/model"
	"github.com/picstream/picstream-go/internal/port"
)

// AssetCompletedHandler fans one completion event out to the connected
// websocket clients. Delivery is best-effort, so the task always acks.
func AssetCompletedHandler(ctx context.Context, event model.CompletionEvent, b port.CompletionBroadcaster) error {
	b.Publish(event)
	log.Printf("✅  Broadcast %s completion for asset #%s", event.Status, event.AssetID)
	return nil
}
