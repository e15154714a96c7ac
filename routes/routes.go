package routes

import (
	"net/http"
	"time"

	"oneq/handlers"
	"oneq/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScoreRoutes registers the direct scoring endpoint.
func RegisterScoreRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/oneq-score")
	{
		api.POST("/calculate", hb.Score.CalculateHandler)
	}
}

// RegisterChatRoutes registers the conversational quoting endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/session", hb.Chat.StartSessionHandler)
		api.POST("/message", hb.Chat.MessageHandler)
		api.DELETE("/session/:sessionID", hb.Chat.AbandonSessionHandler)
	}
}

// RegisterVendorRoutes registers catalog management endpoints.
func RegisterVendorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vendors")
	{
		api.POST("", hb.Vendor.RegisterVendorHandler)
		api.GET("", hb.Vendor.ListVendorsHandler)
		api.GET("/:vendorID", hb.Vendor.GetVendorHandler)
		api.PUT("/:vendorID", hb.Vendor.UpdateVendorHandler)
		api.DELETE("/:vendorID", hb.Vendor.DeleteVendorHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScoreRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterVendorRoutes(r, hb)
	RegisterHealthRoute(r)
}
