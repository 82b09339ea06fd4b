package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/catalog"
	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/esamadhan/volunteer-api/pkg/models"
	"github.com/esamadhan/volunteer-api/pkg/registration"
	"github.com/esamadhan/volunteer-api/pkg/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListCategories returns the volunteer task catalog
func (h *Handler) ListCategories(c *gin.Context) {
	categories := h.Catalog.Categories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetCategory returns one category with its tasks
func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.Catalog.Lookup(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// OpenRegistration opens a registration form session for a category
func (h *Handler) OpenRegistration(c *gin.Context) {
	var req struct {
		CategoryID string `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.Sessions.Open(req.CategoryID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error":         "Category not found",
			"notifications": sess.Feed.Drain(time.Now()),
		})
		return
	}

	h.RecordUsage(c, database.UsageDelta{SessionsOpened: 1})
	c.JSON(http.StatusCreated, sessionView(sess))
}

// GetRegistration returns the session's draft, state and validation status
func (h *Handler) GetRegistration(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

// UpdateRegistration applies field input to the draft
func (h *Handler) UpdateRegistration(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var fields models.DraftFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := sess.Controller.UpdateFields(fields); err != nil {
		h.registrationError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

// ToggleSkill flips a skill label on the draft
func (h *Handler) ToggleSkill(c *gin.Context) {
	h.toggle(c, func(ctrl *registration.Controller) (bool, error) {
		return ctrl.ToggleSkill(c.Param("label"))
	})
}

// ToggleSlot flips an availability slot on the draft
func (h *Handler) ToggleSlot(c *gin.Context) {
	h.toggle(c, func(ctrl *registration.Controller) (bool, error) {
		return ctrl.ToggleAvailabilitySlot(models.AvailabilitySlot(c.Param("slot")))
	})
}

// ToggleTask flips a task selection on the draft
func (h *Handler) ToggleTask(c *gin.Context) {
	h.toggle(c, func(ctrl *registration.Controller) (bool, error) {
		return ctrl.ToggleTaskSelection(c.Param("taskId"))
	})
}

func (h *Handler) toggle(c *gin.Context, fn func(*registration.Controller) (bool, error)) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	selected, err := fn(sess.Controller)
	if err != nil {
		h.registrationError(c, sess, err)
		return
	}
	view := sessionView(sess)
	view["selected"] = selected
	c.JSON(http.StatusOK, view)
}

// SubmitRegistration validates the draft and returns the confirmation
func (h *Handler) SubmitRegistration(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	result, err := sess.Controller.Submit()
	if err != nil {
		h.registrationError(c, sess, err)
		return
	}

	h.RecordUsage(c, database.UsageDelta{Submissions: 1})
	h.log().Info("registration confirmed",
		zap.String("session", sess.ID),
		zap.String("reference", result.Reference))

	c.JSON(http.StatusOK, gin.H{
		"session_id":    sess.ID,
		"state":         sess.Controller.State().String(),
		"result":        result,
		"notifications": sess.Feed.Drain(time.Now()),
	})
}

// CancelRegistration discards the draft. It succeeds for unknown sessions too.
func (h *Handler) CancelRegistration(c *gin.Context) {
	h.Sessions.Close(c.Param("sid"))
	c.JSON(http.StatusOK, gin.H{"state": registration.StateClosed.String()})
}

// GetNotifications drains the session's pending notifications
func (h *Handler) GetNotifications(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": sess.Feed.Drain(time.Now())})
}

func (h *Handler) session(c *gin.Context) (*sessions.Session, bool) {
	sess, err := h.Sessions.Get(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration session not found"})
		return nil, false
	}
	return sess, true
}

func (h *Handler) registrationError(c *gin.Context, sess *sessions.Session, err error) {
	var verr *registration.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         verr.Message(),
			"reason":        verr.Reason,
			"notifications": sess.Feed.Drain(time.Now()),
		})
	case errors.Is(err, registration.ErrUnknownTask), errors.Is(err, registration.ErrUnknownSlot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, registration.ErrFormNotOpen):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": sess.Controller.State().String()})
	default:
		h.log().Error("registration operation failed", zap.String("session", sess.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
	}
}

func sessionView(sess *sessions.Session) gin.H {
	snap := sess.Controller.Snapshot()
	view := gin.H{
		"session_id": sess.ID,
		"state":      snap.State.String(),
		"draft":      snap.Draft,
	}
	if snap.Category != nil {
		view["category"] = snap.Category
	}
	if snap.Result != nil {
		view["result"] = snap.Result
	}
	return view
}
