package handlers

import (
	"net/http"

	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/gin-gonic/gin"
)

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKeyRaw, exists := c.Get(apiKeyContextKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	usage, err := database.UsageHistory(h.DB, apiKey.ID, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalSessions, totalSubmissions int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalSessions += int64(u.SessionsOpened)
		totalSubmissions += int64(u.Submissions)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests":    totalRequests,
			"sessions":    totalSessions,
			"submissions": totalSubmissions,
		},
	})
}
