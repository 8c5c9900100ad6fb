package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nattawatz/linkboard/internal/models"
	"github.com/nattawatz/linkboard/internal/store"
)

// ConfigController reads and updates the allowed-role setting. Who may change
// the role is decided bot-side before the request reaches this boundary.
type ConfigController struct {
	Store *store.TopicStore
	Log   *zap.Logger
}

type setRoleRequest struct {
	RoleID string   `json:"roleId"`
	Actor  actorRef `json:"actor"`
}

func (cc *ConfigController) Get(c *gin.Context) {
	cfg, err := cc.Store.GetConfig(c.Request.Context())
	if err != nil {
		cc.serverError(c, "get config", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed_role_id": cfg.AllowedRoleID})
}

func (cc *ConfigController) GetRole(c *gin.Context) {
	cfg, err := cc.Store.GetConfig(c.Request.Context())
	if err != nil {
		cc.serverError(c, "get config", err)
		return
	}
	roleID := ""
	if cfg.AllowedRoleID != nil {
		roleID = *cfg.AllowedRoleID
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "roleId": roleID})
}

func (cc *ConfigController) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}
	if req.RoleID == "" || req.Actor.UserID == "" || req.Actor.Tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_fields"})
		return
	}

	if err := cc.Store.SetAllowedRole(c.Request.Context(), req.RoleID); err != nil {
		cc.serverError(c, "set allowed role", err)
		return
	}

	if err := cc.Store.AppendLog(c.Request.Context(), models.ActionConfigSetRole, nil,
		req.Actor.UserID, req.Actor.Tag, map[string]any{"roleId": req.RoleID}); err != nil {
		cc.Log.Warn("audit log append failed",
			zap.String("action", models.ActionConfigSetRole),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (cc *ConfigController) serverError(c *gin.Context, op string, err error) {
	cc.Log.Error(op+" failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
}
