package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/wifi-provisioner/api/v1"
)

// GetNetworks returns the latest scan snapshot
// (GET /networks)
func (h *Handler) GetNetworks(c *gin.Context, params v1.GetNetworksParams) {
	snapshot, ready := h.bus.Scans.Load()

	if params.Format != nil && *params.Format == v1.GetNetworksParamsFormatText {
		c.String(http.StatusOK, snapshot.Text())
		return
	}

	var resp v1.NetworkList
	resp.FromModel(snapshot, ready)
	c.JSON(http.StatusOK, resp)
}
