package transport

import (
	"context"

	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/signals"
)

// Static submits a pre-configured payload as soon as the session starts, for
// devices provisioned at build or deploy time.
type Static struct {
	payload []byte
}

func NewStatic(payload string) *Static {
	return &Static{payload: []byte(payload)}
}

func (s *Static) Name() string { return "static" }

func (s *Static) Serve(ctx context.Context, bus *signals.Bus, end <-chan struct{}) error {
	bus.Submit(s.payload)
	zap.S().Named("static").Infow("submitted pre-configured payload", "session", bus.SessionID)

	select {
	case <-end:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
