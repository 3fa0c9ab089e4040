package transport

import (
	"net/http"

	"github.com/eventbooker/webclient/config"
	"github.com/eventbooker/webclient/internal/session"
	"github.com/eventbooker/webclient/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(cfg *config.Config, sessions *session.Manager, authHandler *AuthHandler, eventHandler *EventHandler, bookingHandler *BookingHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	router.LoadHTMLGlob(cfg.Server.TemplateGlob)

	// Public routes: no guard, no events cache
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)

	// Protected routes
	protected := router.Group("/", middleware.RequireAuth(sessions))
	{
		protected.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/events")
		})
		protected.GET("/events", eventHandler.List)
		protected.GET("/bookings", bookingHandler.MyBookings)
		protected.POST("/event/toggle/:id", eventHandler.Toggle)
		protected.POST("/logout", authHandler.Logout)

		// Admin routes
		admin := protected.Group("/event", middleware.RequireAdmin())
		{
			admin.GET("/create", eventHandler.ShowCreate)
			admin.POST("/create", eventHandler.Create)
			admin.GET("/edit/:id", eventHandler.ShowEdit)
			admin.POST("/edit/:id", eventHandler.Update)
			admin.POST("/delete/:id", eventHandler.Delete)
		}
	}

	// Unmatched paths land on the login page
	router.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
