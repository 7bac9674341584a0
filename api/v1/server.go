package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /networks)
	GetNetworks(c *gin.Context, params GetNetworksParams)
	// (POST /setup)
	PostSetup(c *gin.Context, params PostSetupParams)
	// (GET /status)
	GetStatus(c *gin.Context)
}

type serverInterfaceWrapper struct {
	handler ServerInterface
}

func (w *serverInterfaceWrapper) GetNetworks(c *gin.Context) {
	var params GetNetworksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "invalid query parameters: " + err.Error()})
		return
	}
	if params.Format != nil {
		switch *params.Format {
		case GetNetworksParamsFormatJson, GetNetworksParamsFormatText:
		default:
			c.JSON(http.StatusBadRequest, Error{Error: "invalid format: must be 'json' or 'text'"})
			return
		}
	}
	w.handler.GetNetworks(c, params)
}

func (w *serverInterfaceWrapper) PostSetup(c *gin.Context) {
	var params PostSetupParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "invalid query parameters: " + err.Error()})
		return
	}
	w.handler.PostSetup(c, params)
}

func (w *serverInterfaceWrapper) GetStatus(c *gin.Context) {
	w.handler.GetStatus(c)
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	w := &serverInterfaceWrapper{handler: si}

	router.GET("/networks", w.GetNetworks)
	router.POST("/setup", w.PostSetup)
	router.GET("/status", w.GetStatus)
}
