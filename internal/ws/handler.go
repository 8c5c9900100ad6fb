package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Public read-only feed; any origin may subscribe.
		return true
	},
}

// FeedHandler upgrades a listing-page client onto the live topic feed.
func FeedHandler(hub *TopicHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newFeedClient(hub, conn)
		hub.register <- client

		go client.writePump()
		client.readPump()
	}
}
