package handlers

import (
	"errors"
	"net/http"

	"github.com/esamadhan/volunteer-api/pkg/registration"
	"github.com/gin-gonic/gin"
)

// ValidateRegistration reports whether the draft can be submitted, so the
// page can enable or disable its submit button.
func (h *Handler) ValidateRegistration(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	snap := sess.Controller.Snapshot()
	if snap.State != registration.StateFormOpen {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": registration.ErrFormNotOpen.Error(),
			"state": snap.State.String(),
		})
		return
	}

	err := registration.Validate(snap.Draft)
	var verr *registration.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusOK, gin.H{
			"valid":  false,
			"reason": verr.Reason,
			"error":  verr.Message(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"task_count": len(snap.Draft.TaskIDs),
			"slot_count": len(snap.Draft.Slots),
		},
	})
}
