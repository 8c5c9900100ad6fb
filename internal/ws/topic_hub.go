package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nattawatz/linkboard/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

const (
	EventTopicCreated = "topic_created"
	EventTopicRemoved = "topic_removed"
)

// TopicEvent is pushed to listing-page clients so the board updates live.
type TopicEvent struct {
	Type  string        `json:"type"`
	Topic *models.Topic `json:"topic,omitempty"`
	ID    uint          `json:"id,omitempty"`
}

// TopicHub fans topic lifecycle events out to every connected feed client.
type TopicHub struct {
	register   chan *feedClient
	unregister chan *feedClient
	broadcast  chan []byte
	clients    map[*feedClient]struct{}
}

func NewTopicHub() *TopicHub {
	return &TopicHub{
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
		broadcast:  make(chan []byte, 256),
		clients:    make(map[*feedClient]struct{}),
	}
}

func (h *TopicHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				client.conn.Close()
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					delete(h.clients, client)
					close(client.send)
					client.conn.Close()
				}
			}
		}
	}
}

// Broadcast pushes the event to all connected clients. Nil hubs are a no-op so
// callers never need to guard.
func (h *TopicHub) Broadcast(event TopicEvent) {
	if h == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws: failed to marshal event: %v", err)
		return
	}
	h.broadcast <- data
}

type feedClient struct {
	hub  *TopicHub
	conn *websocket.Conn
	send chan []byte
}

func newFeedClient(hub *TopicHub, conn *websocket.Conn) *feedClient {
	return &feedClient{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *feedClient) readPump() {
	defer func() {
		c.hub.unregister <- c
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
