package broadcast

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/picstream/picstream-go/internal/apictx"
	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/port"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSHandler upgrades an authenticated request to a websocket session and
// registers it with the hub. The owner's persisted follow list seeds the
// session's interest set.
func WSHandler(hub *Hub, follows port.FollowManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := apictx.OwnerIDFromContext(r.Context())
		if !ok || ownerID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		following, err := follows.ListFollowing(r.Context(), ownerID)
		if err != nil {
			logger.Warnf(r.Context(), "could not load follow list for %q, starting empty: %v", ownerID, err)
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Errorf(r.Context(), "❌  websocket upgrade failed: %v", err)
			return
		}

		client := NewClient(hub, conn, ownerID, follows, following)
		hub.Add(client)
		client.Start()
	}
}
