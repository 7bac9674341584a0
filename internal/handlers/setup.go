package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/wifi-provisioner/api/v1"
)

// PostSetup hands the raw credentials payload to the session. The payload is
// decoded by the coordinator, so a malformed body is still accepted here.
// (POST /setup)
func (h *Handler) PostSetup(c *gin.Context, params v1.PostSetupParams) {
	if h.bus.End.Published() {
		c.JSON(http.StatusConflict, v1.Error{Error: "device already provisioned"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSubmissionSize)
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, v1.Error{Error: "request body too large"})
		return
	}

	wait := params.Wait != nil && *params.Wait
	ticket := h.bus.Submit(payload)
	zap.S().Named("handlers").Debugw("submission received", "session", h.bus.SessionID, "size", len(payload), "wait", wait)

	resp := v1.SetupResult{SessionId: h.bus.SessionID, Status: v1.SetupResultStatusAccepted}
	if !wait {
		c.JSON(http.StatusAccepted, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.connectTimeout+resultMargin)
	defer cancel()

	// answers to earlier submissions still in flight are skipped; a newer
	// submission replacing this one leaves the request accepted
	outcome, err := h.bus.AwaitAnswer(ctx, ticket)
	if err != nil {
		c.JSON(http.StatusAccepted, resp)
		return
	}

	resp.Status = v1.NewSetupResultStatus(outcome)
	c.JSON(http.StatusOK, resp)
}
