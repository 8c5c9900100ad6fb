package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nattawatz/linkboard/internal/config"
	"github.com/nattawatz/linkboard/internal/controllers"
	"github.com/nattawatz/linkboard/internal/middleware"
	"github.com/nattawatz/linkboard/internal/store"
	"github.com/nattawatz/linkboard/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.TopicHub, logger *zap.Logger) {
	r.Use(middleware.RequestID())

	topicStore := store.New(db)
	topicCtrl := &controllers.TopicController{Store: topicStore, Hub: hub, Log: logger}
	cfgCtrl := &controllers.ConfigController{Store: topicStore, Log: logger}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// Public surface consumed by the listing page from the browser.
	public := r.Group("/public", cors.Default())
	{
		public.GET("/topics", topicCtrl.List)
		public.GET("/ws", ws.FeedHandler(hub))
	}

	// Internal surface: trusted bot process only. Actor authorization already
	// happened on the bot side; the optional service token keeps the boundary
	// off untrusted networks.
	internal := r.Group("/internal")
	if cfg.InternalAuthSecret != "" {
		internal.Use(middleware.ServiceAuth(cfg.InternalAuthSecret))
	}
	{
		internal.POST("/topic.create", topicCtrl.Create)
		internal.POST("/topic.remove", topicCtrl.Remove)
		internal.GET("/config.get", cfgCtrl.Get)
		internal.GET("/config.getRole", cfgCtrl.GetRole)
		internal.POST("/config.setRole", cfgCtrl.SetRole)
	}
}
