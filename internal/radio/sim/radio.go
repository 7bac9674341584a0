// Package sim is an in-memory radio used by the CLI simulation mode and by tests.
// Connect succeeds when the configured station credentials match a known network.
package sim

import (
	"context"
	"net"
	"net/netip"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/radio"
)

// AccessPoint is a network visible to the simulated radio.
type AccessPoint struct {
	ID     string
	Secret string
	Signal int
}

type Radio struct {
	mu sync.Mutex

	hw       net.HardwareAddr
	networks map[string]AccessPoint
	order    []string

	cfg       radio.Config
	started   bool
	connected bool
	linkDown  chan struct{}

	connectLatency time.Duration
	scanLatency    time.Duration
	startErr       error
	configureErr   error

	configureCalls int
	connectCalls   int
	scanCalls      int
	stopCalls      int
	startCalls     int
	connectAt      []time.Time
}

// NewRadio creates a simulated radio with the given hardware address and networks.
func NewRadio(hw net.HardwareAddr, networks ...AccessPoint) *Radio {
	r := &Radio{
		hw:       hw,
		networks: make(map[string]AccessPoint),
		linkDown: closedChan(),
	}
	for _, n := range networks {
		r.AddNetwork(n)
	}
	return r
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// AddNetwork makes a network visible and joinable.
func (r *Radio) AddNetwork(ap AccessPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.networks[ap.ID]; !ok {
		r.order = append(r.order, ap.ID)
	}
	r.networks[ap.ID] = ap
}

// SetConnectLatency delays every Connect by d (bounded by the caller's context).
func (r *Radio) SetConnectLatency(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectLatency = d
}

// SetScanLatency delays every Scan by d.
func (r *Radio) SetScanLatency(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scanLatency = d
}

// FailStart makes Start return err.
func (r *Radio) FailStart(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startErr = err
}

// FailConfigure makes Configure return err.
func (r *Radio) FailConfigure(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configureErr = err
}

// Drop simulates a link loss.
func (r *Radio) Drop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropLocked()
}

func (r *Radio) dropLocked() {
	if r.connected {
		r.connected = false
		close(r.linkDown)
	}
}

func (r *Radio) HardwareAddr() net.HardwareAddr {
	return r.hw
}

func (r *Radio) Configure(cfg radio.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configureCalls++
	if r.configureErr != nil {
		return r.configureErr
	}
	if cfg.Station != r.cfg.Station {
		r.dropLocked()
	}
	r.cfg = cfg
	return nil
}

// Config returns the last applied configuration.
func (r *Radio) Config() radio.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

func (r *Radio) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startCalls++
	if r.startErr != nil {
		return r.startErr
	}
	r.started = true
	return nil
}

func (r *Radio) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCalls++
	r.dropLocked()
	r.started = false
	return nil
}

func (r *Radio) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

func (r *Radio) Connect(ctx context.Context) error {
	r.mu.Lock()
	r.connectCalls++
	r.connectAt = append(r.connectAt, time.Now())
	latency := r.connectLatency
	r.mu.Unlock()

	if latency > 0 {
		t := time.NewTimer(latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return radio.ErrNotStarted
	}
	if r.cfg.Station.IsZero() {
		return radio.ErrNoStation
	}
	ap, ok := r.networks[r.cfg.Station.NetworkID]
	if !ok {
		// unknown network: no beacon answers until the caller gives up
		r.mu.Unlock()
		<-ctx.Done()
		r.mu.Lock()
		return ctx.Err()
	}
	if ap.Secret != r.cfg.Station.Secret {
		return radio.ErrRejected
	}
	if !r.connected {
		r.connected = true
		r.linkDown = make(chan struct{})
		zap.S().Named("sim").Debugw("link up", "network", ap.ID)
	}
	return nil
}

func (r *Radio) Disconnect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropLocked()
	return nil
}

func (r *Radio) Scan(ctx context.Context) (models.ScanSnapshot, error) {
	r.mu.Lock()
	r.scanCalls++
	latency := r.scanLatency
	r.mu.Unlock()

	if latency > 0 {
		t := time.NewTimer(latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil, radio.ErrNotStarted
	}
	out := make(models.ScanSnapshot, 0, len(r.order))
	for _, id := range r.order {
		ap := r.networks[id]
		out = append(out, models.Network{ID: ap.ID, Signal: ap.Signal})
	}
	return out, nil
}

func (r *Radio) IsConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

func (r *Radio) Disconnected() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linkDown
}

// Stats reports call counters.
type Stats struct {
	Configure int
	Connect   int
	Scan      int
	Start     int
	Stop      int
}

func (r *Radio) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Configure: r.configureCalls,
		Connect:   r.connectCalls,
		Scan:      r.scanCalls,
		Start:     r.startCalls,
		Stop:      r.stopCalls,
	}
}

// ConnectTimes returns when each Connect call started.
func (r *Radio) ConnectTimes() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.connectAt...)
}

var _ radio.Radio = (*Radio)(nil)

// NetStack assigns a fixed address once the radio's station link is up.
type NetStack struct {
	mu    sync.Mutex
	radio *Radio
	addr  netip.Addr
	up    bool
	upErr error
}

func NewNetStack(r *Radio, addr netip.Addr) *NetStack {
	return &NetStack{radio: r, addr: addr}
}

// FailUp makes Up return err.
func (n *NetStack) FailUp(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.upErr = err
}

func (n *NetStack) Up(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.upErr != nil {
		return n.upErr
	}
	n.up = true
	return nil
}

func (n *NetStack) Address() (netip.Addr, bool) {
	n.mu.Lock()
	up := n.up
	n.mu.Unlock()
	if !up || !n.radio.IsConnected() {
		return netip.Addr{}, false
	}
	return n.addr, true
}

var _ radio.NetStack = (*NetStack)(nil)

// Restarter records restart requests instead of rebooting.
type Restarter struct {
	mu    sync.Mutex
	count int
	at    []time.Time
}

func (r *Restarter) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	r.at = append(r.at, time.Now())
	zap.S().Named("sim").Warnw("device restart requested", "count", r.count)
}

// Count returns how many restarts were requested.
func (r *Restarter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// LastAt returns the time of the last restart request.
func (r *Restarter) LastAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.at) == 0 {
		return time.Time{}
	}
	return r.at[len(r.at)-1]
}

var _ radio.Restarter = (*Restarter)(nil)
