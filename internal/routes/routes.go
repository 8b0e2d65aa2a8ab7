package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navdeck/navdeck/internal/config"
	"github.com/navdeck/navdeck/internal/controllers"
	"github.com/navdeck/navdeck/internal/middleware"
	"github.com/navdeck/navdeck/internal/ordering"
	"github.com/navdeck/navdeck/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.Hub) {
	orders := &ordering.Engine{DB: db}

	authCtrl := &controllers.AuthController{Cfg: cfg}
	groupCtrl := &controllers.GroupController{DB: db, Orders: orders, Hub: hub}
	siteCtrl := &controllers.SiteController{DB: db, Orders: orders, Hub: hub}
	configCtrl := &controllers.ConfigController{DB: db, Hub: hub}
	orderCtrl := &controllers.OrderController{Orders: orders, Hub: hub}

	// Public
	r.POST("/api/login", authCtrl.Login)

	// Everything else sits behind the gate. With the gate disabled the
	// middleware admits every request as guest.
	authMW := middleware.AuthMiddleware(middleware.AuthConfig{
		Enabled:   cfg.AuthEnabled,
		JWTSecret: cfg.JWTSecret,
	})
	api := r.Group("/api", authMW)
	{
		api.GET("/groups", groupCtrl.List)
		api.POST("/groups", groupCtrl.Create)
		api.GET("/groups/:id", groupCtrl.Get)
		api.PUT("/groups/:id", groupCtrl.Update)
		api.DELETE("/groups/:id", groupCtrl.Delete)

		api.GET("/sites", siteCtrl.List)
		api.POST("/sites", siteCtrl.Create)
		api.GET("/sites/:id", siteCtrl.Get)
		api.PUT("/sites/:id", siteCtrl.Update)
		api.DELETE("/sites/:id", siteCtrl.Delete)
		api.GET("/sites/:id/qrcode", siteCtrl.QRCode)

		api.PUT("/group-orders", orderCtrl.SetGroupOrder)
		api.PUT("/site-orders", orderCtrl.SetSiteOrder)

		api.GET("/configs", configCtrl.List)
		api.GET("/configs/:key", configCtrl.Get)
		api.PUT("/configs/:key", configCtrl.Set)
		api.DELETE("/configs/:key", configCtrl.Delete)
	}

	// The events upgrade alone accepts ?token=: browsers cannot set
	// headers on a WebSocket upgrade, and query tokens must stay out of
	// access logs for ordinary API calls.
	wsMW := middleware.AuthMiddleware(middleware.AuthConfig{
		Enabled:         cfg.AuthEnabled,
		JWTSecret:       cfg.JWTSecret,
		AllowQueryToken: true,
	})
	r.GET("/api/events", wsMW, ws.Handler(hub))
}
