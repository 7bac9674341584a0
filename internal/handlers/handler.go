package handlers

import (
	"time"

	v1 "github.com/kubev2v/wifi-provisioner/api/v1"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
)

// maxSubmissionSize bounds a setup request body. A valid payload is far smaller.
const maxSubmissionSize = 4 << 10

// resultMargin is added to the connect timeout when a client waits for the outcome,
// covering the coordinator's poll tick and the radio configuration.
const resultMargin = 2 * time.Second

// Handler serves one provisioning session.
type Handler struct {
	bus            *signals.Bus
	connectTimeout time.Duration
}

var _ v1.ServerInterface = (*Handler)(nil)

func New(bus *signals.Bus, connectTimeout time.Duration) *Handler {
	return &Handler{
		bus:            bus,
		connectTimeout: connectTimeout,
	}
}
