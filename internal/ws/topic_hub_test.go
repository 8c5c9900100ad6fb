package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/nattawatz/linkboard/internal/models"
)

func TestTopicHub_BroadcastReachesFeedClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewTopicHub()
	go hub.Run()

	r := gin.New()
	r.GET("/public/ws", FeedHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/public/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration races the broadcast; give the hub a beat to pick it up.
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(TopicEvent{
		Type:  EventTopicCreated,
		Topic: &models.Topic{ID: 1, Title: "Docs", URL: "https://example.com", ImageURL: "-"},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event TopicEvent
	require.NoError(t, json.Unmarshal(msg, &event))
	require.Equal(t, EventTopicCreated, event.Type)
	require.NotNil(t, event.Topic)
	require.Equal(t, "Docs", event.Topic.Title)

	hub.Broadcast(TopicEvent{Type: EventTopicRemoved, ID: 1})
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(msg, &event))
	require.Equal(t, EventTopicRemoved, event.Type)
	require.EqualValues(t, 1, event.ID)
}

func TestTopicHub_NilHubBroadcastIsNoop(t *testing.T) {
	var hub *TopicHub
	hub.Broadcast(TopicEvent{Type: EventTopicRemoved, ID: 1})
}
