package handlers

import (
	"net/http"

	"github.com/esamadhan/volunteer-api/pkg/logging"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// NewRouter wires every route onto a gin engine and wraps it with CORS for
// the browser front end.
func NewRouter(h *Handler, corsOrigins []string) http.Handler {
	r := gin.New()
	r.Use(logging.GinLogger(h.log()), gin.Recovery())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "E-Samadhan Volunteer API",
			"version": Version,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": h.Sessions.Len(),
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	api := r.Group("/api")
	{
		api.GET("/categories", h.ListCategories)
		api.GET("/categories/:id", h.GetCategory)

		api.GET("/usage", h.APIKeyMiddleware(), h.GetMyUsage)

		// Registration Endpoints
		reg := api.Group("/registrations")
		reg.Use(h.OptionalAPIKeyMiddleware())
		{
			reg.POST("", h.OpenRegistration)
			reg.GET("/:sid", h.GetRegistration)
			reg.PATCH("/:sid", h.UpdateRegistration)
			reg.DELETE("/:sid", h.CancelRegistration)
			reg.GET("/:sid/status", h.ValidateRegistration)
			reg.GET("/:sid/notifications", h.GetNotifications)
			reg.POST("/:sid/skills/:label/toggle", h.ToggleSkill)
			reg.POST("/:sid/slots/:slot/toggle", h.ToggleSlot)
			reg.POST("/:sid/tasks/:taskId/toggle", h.ToggleTask)
			reg.POST("/:sid/submit", h.SubmitRegistration)
		}

		// Demo panel feeds
		dm := api.Group("/demo")
		{
			dm.GET("/issues", h.ListIssues)
			dm.POST("/issues/:id/vote", h.VoteIssue)
			dm.GET("/issues/:id/timeline", h.GetIssueTimeline)
			dm.GET("/profile", h.GetProfile)
			dm.GET("/analytics", h.GetAnalytics)
		}

		api.GET("/live", h.LiveUpdates)
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(r)
}
