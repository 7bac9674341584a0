package services

import (
	"context"
	"errors"
	"net/netip"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/radio"
)

const (
	connectRetryPause   = 250 * time.Millisecond
	addressPollInterval = 50 * time.Millisecond
)

// connectWithin retries r.Connect until it succeeds, the access point rejects the
// credentials, or timeout elapses.
func connectWithin(ctx context.Context, r radio.Radio, timeout time.Duration, log *zap.SugaredLogger) models.ConnectionOutcome {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		err := r.Connect(ctx)
		switch {
		case err == nil:
			return models.OutcomeConnected
		case errors.Is(err, radio.ErrRejected):
			log.Infow("credentials rejected by access point", "attempt", attempt)
			return models.OutcomeRejected
		case ctx.Err() != nil:
			log.Warnw("connect attempt", "error", connectTimeoutError(ctx.Err()), "timeout", timeout)
			return models.OutcomeTimedOut
		}

		log.Debugw("connect attempt failed", "attempt", attempt, "error", err)
		if !sleep(ctx, connectRetryPause) {
			log.Warnw("connect attempt", "error", connectTimeoutError(ctx.Err()), "timeout", timeout)
			return models.OutcomeTimedOut
		}
	}
}

// waitForAddress polls the IP stack until an address is assigned. There is no
// overall timeout: the device is unusable without an address.
func waitForAddress(ctx context.Context, stack radio.NetStack, log *zap.SugaredLogger) (netip.Addr, error) {
	log.Info("waiting for IP address")
	for {
		if addr, ok := stack.Address(); ok {
			log.Infow("got IP address", "address", addr)
			return addr, nil
		}
		if !sleep(ctx, addressPollInterval) {
			return netip.Addr{}, ctx.Err()
		}
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
