package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/demo"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const liveWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ListIssues returns the sample issues used by the demo panels
func (h *Handler) ListIssues(c *gin.Context) {
	issues := demo.Issues()
	c.JSON(http.StatusOK, gin.H{"issues": issues, "total": len(issues)})
}

// VoteIssue records a simulated community validation vote
func (h *Handler) VoteIssue(c *gin.Context) {
	var req struct {
		Type string `json:"type" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tally, note, err := h.Votes.Vote(c.Param("id"), demo.VoteType(req.Type))
	if err != nil {
		if errors.Is(err, demo.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tally": tally, "notification": note})
}

// GetIssueTimeline returns the tracking timeline of a sample issue
func (h *Handler) GetIssueTimeline(c *gin.Context) {
	tl, err := demo.Timeline(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	c.JSON(http.StatusOK, tl)
}

// GetProfile returns the sample gamification profile
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, demo.Profile())
}

// GetAnalytics returns the dashboard snapshot
func (h *Handler) GetAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.Analytics.Snapshot())
}

// LiveUpdates streams rotating live-update notifications over a websocket
// for as long as the client stays connected.
func (h *Handler) LiveUpdates(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log().Warn("failed to upgrade to websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	updates, unsubscribe := h.Live.Subscribe()
	defer unsubscribe()

	// The client never sends anything meaningful; reading detects disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case n, ok := <-updates:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(time.Second))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteJSON(n); err != nil {
				h.log().Debug("live update write failed", zap.Error(err))
				return
			}
		}
	}
}
