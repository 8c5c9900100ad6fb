package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nattawatz/linkboard/internal/bot/api"
)

// commandPayload is what the platform glue POSTs for each dispatched command.
// The flow is ack-once-immediately, resolve-once-later: we acknowledge within
// the platform's ack window and deliver exactly one terminal message to
// ResponseURL when the command finishes.
type commandPayload struct {
	Command     string            `json:"command" binding:"required"`
	GuildID     string            `json:"guild_id"`
	Options     map[string]string `json:"options"`
	Actor       api.Actor         `json:"actor"`
	MemberRoles []string          `json:"member_roles"`
	Permissions struct {
		ManageGuild bool `json:"manage_guild"`
	} `json:"permissions"`
	ResponseURL string `json:"response_url" binding:"required"`
}

// Adapter is the HTTP command-dispatch adapter in front of a Handler.
type Adapter struct {
	Handler *Handler
	// Token, when set, must be presented by the platform glue as a bearer.
	Token   string
	Timeout time.Duration
	Log     *zap.Logger

	resolver *http.Client
}

// Router builds the bot's HTTP surface.
func (a *Adapter) Router() *gin.Engine {
	a.resolver = &http.Client{Timeout: a.Timeout}

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Command definitions, for the platform glue's registration step.
	r.GET("/commands", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "commands": Definitions()})
	})
	r.POST("/commands", a.dispatch)
	return r
}

func (a *Adapter) dispatch(c *gin.Context) {
	if a.Token != "" {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(auth), "bearer ") ||
			strings.TrimSpace(auth[len("Bearer "):]) != a.Token {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
			return
		}
	}

	var payload commandPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}
	if payload.Actor.UserID == "" || payload.Actor.Tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}

	// Ack now, resolve later; network work happens after the ack window is met.
	c.JSON(http.StatusOK, gin.H{"ok": true, "deferred": true})

	go a.resolve(payload)
}

func (a *Adapter) resolve(payload commandPayload) {
	// Runs detached from the request; a panic here must not take the process down.
	defer func() {
		if r := recover(); r != nil {
			a.Log.Error("command resolution panic",
				zap.String("command", payload.Command),
				zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), a.Timeout)
	defer cancel()

	msg := a.Handler.Handle(ctx, Interaction{
		Command:        payload.Command,
		GuildID:        payload.GuildID,
		Options:        payload.Options,
		Actor:          payload.Actor,
		MemberRoles:    payload.MemberRoles,
		CanManageGuild: payload.Permissions.ManageGuild,
	})

	body, err := json.Marshal(gin.H{"content": msg})
	if err != nil {
		a.Log.Error("resolve marshal failed", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, payload.ResponseURL, bytes.NewReader(body))
	if err != nil {
		a.Log.Error("resolve request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.resolver.Do(req)
	if err != nil {
		a.Log.Error("resolve delivery failed",
			zap.String("command", payload.Command),
			zap.Error(err))
		return
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.Log.Error("resolve delivery rejected",
			zap.String("command", payload.Command),
			zap.Int("status", resp.StatusCode))
	}
}
