package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nattawatz/linkboard/internal/models"
	"github.com/nattawatz/linkboard/internal/store"
	"github.com/nattawatz/linkboard/internal/ws"
)

type TopicController struct {
	Store *store.TopicStore
	Hub   *ws.TopicHub
	Log   *zap.Logger
}

type actorRef struct {
	UserID string `json:"userId"`
	Tag    string `json:"tag"`
}

type createTopicRequest struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Actor       actorRef `json:"actor"`
}

type removeTopicRequest struct {
	ID    uint     `json:"id"`
	Actor actorRef `json:"actor"`
}

// NoImage is the sentinel stored when a topic has no image.
const NoImage = "-"

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// List serves the public board: active topics only, newest first.
func (tc *TopicController) List(c *gin.Context) {
	topics, err := tc.Store.ListActiveTopics(c.Request.Context())
	if err != nil {
		tc.serverError(c, "list topics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "items": topics})
}

func (tc *TopicController) Create(c *gin.Context) {
	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}
	if req.Title == "" || req.URL == "" || req.Actor.UserID == "" || req.Actor.Tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}
	if !isHTTPURL(req.URL) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_url"})
		return
	}
	// A bad primary URL is a hard error, a bad image URL only loses the image.
	image := req.ImageURL
	if image == "" || image == NoImage || !isHTTPURL(image) {
		image = NoImage
	}

	topic := models.Topic{
		Title:           req.Title,
		URL:             req.URL,
		Description:     req.Description,
		ImageURL:        image,
		CreatedByUserID: req.Actor.UserID,
		CreatedByTag:    req.Actor.Tag,
	}
	if err := tc.Store.CreateTopic(c.Request.Context(), &topic); err != nil {
		tc.serverError(c, "create topic", err)
		return
	}

	tc.appendLog(c, models.ActionTopicCreate, &topic.ID, req.Actor, map[string]any{
		"title": topic.Title,
		"url":   topic.URL,
	})
	tc.Hub.Broadcast(ws.TopicEvent{Type: ws.EventTopicCreated, Topic: &topic})

	c.JSON(http.StatusOK, gin.H{"ok": true, "topicId": topic.ID})
}

func (tc *TopicController) Remove(c *gin.Context) {
	var req removeTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}
	if req.ID == 0 || req.Actor.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}

	removed, err := tc.Store.SoftDeleteTopic(c.Request.Context(), req.ID)
	if err != nil {
		tc.serverError(c, "remove topic", err)
		return
	}

	tc.appendLog(c, models.ActionTopicRemove, &req.ID, req.Actor, map[string]any{
		"removed": removed,
	})
	if removed {
		tc.Hub.Broadcast(ws.TopicEvent{Type: ws.EventTopicRemoved, ID: req.ID})
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "removed": removed})
}

// appendLog is best-effort; a failed audit row never fails the mutation.
func (tc *TopicController) appendLog(c *gin.Context, action string, topicID *uint, actor actorRef, detail map[string]any) {
	if err := tc.Store.AppendLog(c.Request.Context(), action, topicID, actor.UserID, actor.Tag, detail); err != nil {
		tc.Log.Warn("audit log append failed",
			zap.String("action", action),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	}
}

func (tc *TopicController) serverError(c *gin.Context, op string, err error) {
	tc.Log.Error(op+" failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
}
