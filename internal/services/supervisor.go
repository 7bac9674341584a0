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

// Supervisor keeps the station link up after provisioning. It can be paused,
// which disconnects and stops the radio until Resume is called.
type Supervisor struct {
	radio          radio.Radio
	reconnectDelay time.Duration
	connectTimeout time.Duration
	// true pauses, false resumes; only the latest request counts.
	control *signals.Mailbox[bool]

	mu    sync.RWMutex
	state models.SupervisorState
}

func NewSupervisor(r radio.Radio, settings models.Settings) *Supervisor {
	return &Supervisor{
		radio:          r,
		reconnectDelay: settings.ReconnectDelay,
		connectTimeout: settings.ConnectTimeout,
		control:        signals.NewMailbox[bool](),
		state:          models.SupervisorStateRunning,
	}
}

func (s *Supervisor) Pause() {
	s.control.Put(true)
}

func (s *Supervisor) Resume() {
	s.control.Put(false)
}

func (s *Supervisor) State() models.SupervisorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Supervisor) setState(state models.SupervisorState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	zap.S().Named("supervisor").Debugw("supervisor state transition", "from", s.state, "to", state)
	s.state = state
}

// Run returns only when ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	log := zap.S().Named("supervisor")
	defer log.Debug("supervisor stopped")

	for {
		if s.radio.IsConnected() {
			select {
			case <-s.radio.Disconnected():
				log.Info("station link lost")
			case <-s.control.Notify():
				paused, ok := s.control.TryTake()
				if !ok || !paused {
					continue
				}
				if err := s.pause(ctx); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
			if !sleep(ctx, s.reconnectDelay) {
				return
			}
		} else if paused, ok := s.control.TryTake(); ok && paused {
			if err := s.pause(ctx); err != nil {
				return
			}
			if !sleep(ctx, s.reconnectDelay) {
				return
			}
		}

		outcome := connectWithin(ctx, s.radio, s.connectTimeout, log)
		if ctx.Err() != nil {
			return
		}
		if outcome == models.OutcomeConnected {
			log.Info("station link up")
			continue
		}

		log.Infow("reconnect failed", "outcome", outcome, "retry_in", s.reconnectDelay)
		if !sleep(ctx, s.reconnectDelay) {
			return
		}
	}
}

// pause blocks until a resume arrives. Repeated pause requests are ignored.
func (s *Supervisor) pause(ctx context.Context) error {
	log := zap.S().Named("supervisor")
	log.Info("pausing radio")

	if err := s.radio.Disconnect(ctx); err != nil {
		log.Warnw("failed to disconnect", "error", err)
	}
	if err := s.radio.Stop(ctx); err != nil {
		log.Warnw("failed to stop radio", "error", err)
	}
	s.setState(models.SupervisorStatePaused)

	for {
		paused, err := s.control.Take(ctx)
		if err != nil {
			return err
		}
		if !paused {
			break
		}
	}

	log.Info("resuming radio")
	if err := s.radio.Start(ctx); err != nil {
		log.Errorw("failed to start radio", "error", radioInitError(err))
	}
	s.setState(models.SupervisorStateRunning)
	return nil
}
