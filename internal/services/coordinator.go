package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/radio"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
)

// CredentialStore persists the provisioned network.
type CredentialStore interface {
	Get(ctx context.Context) (*models.Credentials, error)
	Save(ctx context.Context, creds *models.Credentials) error
}

// Coordinator runs a provisioning session. It owns the radio until Run returns.
type Coordinator struct {
	settings  models.Settings
	bus       *signals.Bus
	radio     radio.Radio
	base      radio.Config
	store     CredentialStore
	restarter radio.Restarter
	now       func() time.Time

	mu    sync.RWMutex
	state models.SessionState
}

// NewCoordinator creates a coordinator for one session. base is the radio
// configuration in effect when the session started; submissions replace its station
// part only.
func NewCoordinator(settings models.Settings, bus *signals.Bus, r radio.Radio, base radio.Config, st CredentialStore, restarter radio.Restarter) *Coordinator {
	return &Coordinator{
		settings:  settings,
		bus:       bus,
		radio:     r,
		base:      base,
		store:     st,
		restarter: restarter,
		now:       time.Now,
		state:     models.SessionStateWaiting,
	}
}

func (c *Coordinator) State() models.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Coordinator) setState(state models.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	zap.S().Named("coordinator").Debugw("session state transition", "session", c.bus.SessionID, "from", c.state, "to", state)
	c.state = state
}

// Run loops until credentials are accepted by an access point, the reset deadline
// triggers a restart, or ctx ends.
func (c *Coordinator) Run(ctx context.Context) (models.Credentials, error) {
	log := zap.S().Named("coordinator").With("session", c.bus.SessionID)
	log.Infow("provisioning session started", "identifier", c.bus.Identifier, "mode", c.base.Mode)

	started := c.now()
	var lastScan time.Time
	scanned := false

	// radio operations end at the reset deadline so the check below is never late
	radioCtx := ctx
	if c.settings.HasResetDeadline() {
		var cancel context.CancelFunc
		radioCtx, cancel = context.WithDeadline(ctx, started.Add(c.settings.ResetDeadline))
		defer cancel()
	}

	for {
		if err := ctx.Err(); err != nil {
			return models.Credentials{}, err
		}

		if payload, ticket, ok := c.bus.TakeSubmission(); ok {
			creds, done, err := c.handleSubmission(ctx, radioCtx, ticket, payload)
			if err != nil {
				return models.Credentials{}, err
			}
			if done {
				return creds, nil
			}
		} else if !scanned || c.now().Sub(lastScan) >= c.settings.ScanInterval {
			c.scan(radioCtx)
			lastScan = c.now()
			scanned = true
		}

		// checked every tick, whichever branch ran
		if c.settings.HasResetDeadline() && c.now().Sub(started) >= c.settings.ResetDeadline {
			log.Warnw("no credentials provisioned before reset deadline", "deadline", c.settings.ResetDeadline)
			c.setState(models.SessionStateRestarting)
			c.restarter.Restart()
			return models.Credentials{}, ErrRestartTriggered
		}

		if !sleep(ctx, c.settings.PollInterval) {
			return models.Credentials{}, ctx.Err()
		}
	}
}

// handleSubmission reports done once creds connected and the session has ended.
// A payload that does not decode leaves the radio and the store untouched. The
// connect attempt runs under radioCtx, everything after it under ctx. The outcome
// is answered against ticket.
func (c *Coordinator) handleSubmission(ctx, radioCtx context.Context, ticket uint64, payload []byte) (models.Credentials, bool, error) {
	log := zap.S().Named("coordinator").With("session", c.bus.SessionID)

	creds, err := models.DecodeCredentials(payload)
	if err != nil {
		log.Warnw("discarding submission", "error", decodeError(err))
		return models.Credentials{}, false, nil
	}

	cfg := c.base
	cfg.Station = creds
	if err := c.radio.Configure(cfg); err != nil {
		return models.Credentials{}, false, radioConfigError(err)
	}

	c.setState(models.SessionStateConnecting)
	log.Infow("trying submitted credentials", "credentials", creds.String())

	outcome := connectWithin(radioCtx, c.radio, c.settings.ConnectTimeout, log)
	c.bus.Answer(ticket, outcome)
	if outcome != models.OutcomeConnected {
		log.Infow("submitted credentials did not connect", "outcome", outcome)
		c.setState(models.SessionStateWaiting)
		return models.Credentials{}, false, nil
	}

	if err := c.store.Save(ctx, &creds); err != nil {
		log.Errorw("failed to persist credentials", "error", storeWriteError(err))
	}

	c.setState(models.SessionStateProvisioned)
	c.bus.End.Publish()
	log.Infow("credentials provisioned", "network_id", creds.NetworkID)

	sleep(ctx, c.settings.GracePeriod)
	return creds, true, nil
}

func (c *Coordinator) scan(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.ConnectTimeout)
	defer cancel()

	snapshot, err := c.radio.Scan(ctx)
	if err != nil {
		zap.S().Named("coordinator").Debugw("scan failed", "session", c.bus.SessionID, "error", err)
		return
	}
	c.bus.Scans.Put(snapshot)
}
