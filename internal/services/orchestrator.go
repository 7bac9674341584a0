package services

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/radio"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
	"github.com/kubev2v/wifi-provisioner/internal/store"
)

// Listener feeds submissions into a provisioning session and serves its scan
// results. Serve must return once end is closed or ctx is done.
type Listener interface {
	Name() string
	Serve(ctx context.Context, bus *signals.Bus, end <-chan struct{}) error
}

// Orchestrator brings the device onto a network: stored credentials first,
// a provisioning session otherwise.
type Orchestrator struct {
	settings  models.Settings
	store     CredentialStore
	radio     radio.Radio
	netstack  radio.NetStack
	restarter radio.Restarter
	listeners []Listener

	// OnSessionStart, if set, is called once the session bus exists and before the
	// radio starts advertising.
	OnSessionStart func(bus *signals.Bus)
}

func NewOrchestrator(settings models.Settings, st CredentialStore, r radio.Radio, netstack radio.NetStack, restarter radio.Restarter, listeners ...Listener) *Orchestrator {
	return &Orchestrator{
		settings:  settings,
		store:     st,
		radio:     r,
		netstack:  netstack,
		restarter: restarter,
		listeners: listeners,
	}
}

// Run returns once the station has an address. The returned Handle owns the
// supervisor goroutine, which lives until ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) (*Handle, error) {
	log := zap.S().Named("orchestrator")

	var (
		creds     models.Credentials
		sessionID string
		connected bool
	)

	stored, err := o.store.Get(ctx)
	switch {
	case err == nil:
		creds = *stored
		connected, err = o.connectStored(ctx, creds)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, store.ErrNotFound):
		log.Info("no stored credentials")
	default:
		log.Warnw("no stored credentials", "error", storeReadError(err))
	}

	if !connected {
		creds, sessionID, err = o.provision(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := o.netstack.Up(ctx); err != nil {
		return nil, radioConfigError(fmt.Errorf("bringing up IP stack: %w", err))
	}

	addr, err := waitForAddress(ctx, o.netstack, log)
	if err != nil {
		return nil, err
	}

	supervisor := NewSupervisor(o.radio, o.settings)
	h := &Handle{
		Address:     addr,
		Credentials: creds,
		SessionID:   sessionID,
		supervisor:  supervisor,
		done:        make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		supervisor.Run(ctx)
	}()

	log.Infow("network ready", "handle", h.String())
	return h, nil
}

func (o *Orchestrator) connectStored(ctx context.Context, creds models.Credentials) (bool, error) {
	log := zap.S().Named("orchestrator")

	if err := o.radio.Configure(radio.StationConfig(creds)); err != nil {
		return false, radioConfigError(err)
	}
	if err := o.radio.Start(ctx); err != nil {
		return false, radioInitError(err)
	}

	log.Infow("connecting with stored credentials", "network_id", creds.NetworkID)
	outcome := connectWithin(ctx, o.radio, o.settings.ConnectTimeout, log)
	if outcome != models.OutcomeConnected {
		log.Warnw("stored credentials did not connect", "outcome", outcome)
		return false, nil
	}
	return true, nil
}

func (o *Orchestrator) provision(ctx context.Context) (models.Credentials, string, error) {
	identifier := models.FallbackIdentifier(o.settings.IdentifierPrefix, o.radio.HardwareAddr())
	sessionID := uuid.NewString()
	bus := signals.NewBus(sessionID, identifier)
	log := zap.S().Named("orchestrator").With("session", sessionID)

	cfg := radio.Config{Mode: radio.ModeStation}
	if o.settings.AccessPointEnabled {
		cfg = radio.Config{Mode: radio.ModeAccessPointStation, AccessPointID: identifier}
	}
	if err := o.radio.Configure(cfg); err != nil {
		return models.Credentials{}, "", radioConfigError(err)
	}

	if o.OnSessionStart != nil {
		o.OnSessionStart(bus)
	}

	if !o.radio.Started() {
		if err := o.radio.Start(ctx); err != nil {
			return models.Credentials{}, "", radioInitError(err)
		}
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(o.settings.MaxSessionTasks)

	abort := func(err error) (models.Credentials, string, error) {
		cancel()
		_ = g.Wait()
		return models.Credentials{}, "", err
	}

	for _, l := range o.listeners {
		end := bus.End.Subscribe()
		if !g.TryGo(func() error {
			log.Debugw("listener started", "listener", l.Name())
			if err := l.Serve(sessionCtx, bus, end); err != nil && !errors.Is(err, context.Canceled) {
				log.Warnw("listener stopped", "listener", l.Name(), "error", err)
			}
			return nil
		}) {
			return abort(taskSpawnError(fmt.Errorf("listener %s", l.Name())))
		}
	}

	type result struct {
		creds models.Credentials
		err   error
	}
	results := make(chan result, 1)
	coordinator := NewCoordinator(o.settings, bus, o.radio, cfg, o.store, o.restarter)
	if !g.TryGo(func() error {
		creds, err := coordinator.Run(sessionCtx)
		results <- result{creds: creds, err: err}
		return nil
	}) {
		return abort(taskSpawnError(errors.New("coordinator")))
	}

	var r result
	select {
	case r = <-results:
	case <-ctx.Done():
		return abort(ctx.Err())
	}
	if r.err != nil {
		return abort(r.err)
	}

	// Listeners wind down on the end broadcast; cancel covers any that ignore it.
	cancel()
	_ = g.Wait()
	log.Debug("provisioning session dropped")

	if err := o.radio.Configure(radio.StationConfig(r.creds)); err != nil {
		return models.Credentials{}, "", radioConfigError(err)
	}

	if o.settings.RestartAfterConnection {
		log.Info("restarting after provisioning")
		sleep(ctx, o.settings.GracePeriod)
		o.restarter.Restart()
		return models.Credentials{}, "", ErrRestartTriggered
	}

	return r.creds, sessionID, nil
}

// Handle is the result of a completed startup.
type Handle struct {
	Address     netip.Addr
	Credentials models.Credentials
	// SessionID is empty when stored credentials were used.
	SessionID string

	supervisor *Supervisor
	done       chan struct{}
}

// StopRadio pauses the supervisor, disconnecting and stopping the radio.
func (h *Handle) StopRadio() {
	h.supervisor.Pause()
}

// RestartRadio resumes a paused supervisor. It is a no-op while running.
func (h *Handle) RestartRadio() {
	h.supervisor.Resume()
}

func (h *Handle) SupervisorState() models.SupervisorState {
	return h.supervisor.State()
}

// Wait blocks until the supervisor exits, which happens when the Run context ends.
func (h *Handle) Wait() {
	<-h.done
}

func (h *Handle) String() string {
	return fmt.Sprintf("address=%s credentials=%s session=%q", h.Address, h.Credentials, h.SessionID)
}
