package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/wifi-provisioner/api/v1"
)

// GetStatus returns the session status
// (GET /status)
func (h *Handler) GetStatus(c *gin.Context) {
	var resp v1.SessionStatus
	resp.FromModel(h.bus.Status())
	c.JSON(http.StatusOK, resp)
}
