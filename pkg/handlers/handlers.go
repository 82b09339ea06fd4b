package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/auth"
	"github.com/esamadhan/volunteer-api/pkg/catalog"
	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/esamadhan/volunteer-api/pkg/demo"
	"github.com/esamadhan/volunteer-api/pkg/notify"
	"github.com/esamadhan/volunteer-api/pkg/ratelimit"
	"github.com/esamadhan/volunteer-api/pkg/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed static/*
var staticEmbed embed.FS

const apiKeyContextKey = "apiKey"

// Handler contains dependencies for the route handlers
type Handler struct {
	DB        *gorm.DB
	Auth      *auth.Authenticator
	Catalog   *catalog.Catalog
	Sessions  *sessions.Store
	Votes     *demo.Votes
	Analytics *demo.Analytics
	Live      *notify.Rotator
	Limiter   ratelimit.Limiter
	Logger    *zap.Logger
}

func (h *Handler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware requires a valid partner API key and enforces its daily limit
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return h.apiKey(true)
}

// OptionalAPIKeyMiddleware meters partner traffic when a key is presented
// and lets anonymous browser traffic through.
func (h *Handler) OptionalAPIKeyMiddleware() gin.HandlerFunc {
	return h.apiKey(false)
}

func (h *Handler) apiKey(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
				return
			}
			c.Next()
			return
		}

		partner, err := h.Auth.VerifyAPIKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		// Only keys issued by an admin have a record; revoking deletes it.
		var apiKey database.APIKey
		if err := h.DB.Where(&database.APIKey{Key: key}).First(&apiKey).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key revoked or unknown"})
				return
			}
			h.log().Error("api key lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load API key"})
			return
		}

		if h.Limiter != nil && !h.Limiter.Allow(c.Request.Context(), apiKey) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Daily rate limit exceeded"})
			return
		}

		now := time.Now()
		apiKey.LastUsed = &now
		h.DB.Model(&apiKey).Update("last_used", now)

		c.Set(apiKeyContextKey, &apiKey)
		c.Set("partner", partner)
		c.Next()

		h.RecordUsage(c, database.UsageDelta{Requests: 1})
	}
}

// RecordUsage adds delta to the calling key's usage for today. Anonymous
// requests are not metered.
func (h *Handler) RecordUsage(c *gin.Context, delta database.UsageDelta) {
	apiKeyRaw, exists := c.Get(apiKeyContextKey)
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	if err := database.RecordUsage(h.DB, apiKey.ID, time.Now(), delta); err != nil {
		h.log().Warn("failed to record usage", zap.Uint("key_id", apiKey.ID), zap.Error(err))
	}
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
