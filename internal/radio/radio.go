// Package radio defines the boundary between the provisioning logic and the
// wireless hardware: the radio driver, the IP stack on top of the station
// interface, and the device restart hook.
package radio

import (
	"context"
	"errors"
	"net"
	"net/netip"

	"github.com/kubev2v/wifi-provisioner/internal/models"
)

var (
	// ErrRejected is returned by Connect when the access point refused the credentials.
	ErrRejected = errors.New("radio: credentials rejected")
	// ErrNotStarted is returned when the radio is used before Start.
	ErrNotStarted = errors.New("radio: not started")
	// ErrNoStation is returned by Connect when no station configuration is set.
	ErrNoStation = errors.New("radio: no station configuration")
)

// Mode selects which interfaces the radio runs.
type Mode int

const (
	ModeStation Mode = iota
	ModeAccessPointStation
)

func (m Mode) String() string {
	switch m {
	case ModeStation:
		return "station"
	case ModeAccessPointStation:
		return "ap+station"
	default:
		return "unknown"
	}
}

// Config is the complete radio configuration applied by Configure.
type Config struct {
	Mode Mode
	// Station is the network to join. Zero means no station network configured.
	Station models.Credentials
	// AccessPointID is the name of the self-hosted network in ModeAccessPointStation.
	AccessPointID string
}

// StationConfig returns a station-only configuration for creds.
func StationConfig(creds models.Credentials) Config {
	return Config{Mode: ModeStation, Station: creds}
}

// Radio is the exclusive-ownership handle on the wireless hardware. Only one
// component holds it at a time; implementations need not support concurrent
// configuration changes.
type Radio interface {
	HardwareAddr() net.HardwareAddr
	Configure(cfg Config) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Started() bool
	// Connect joins the configured station network once. It returns ErrRejected for
	// an authentication failure and ctx.Err() when the context expires first.
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Scan(ctx context.Context) (models.ScanSnapshot, error)
	IsConnected() bool
	// Disconnected returns a channel that is closed when the current link drops.
	// When not connected the returned channel is already closed.
	Disconnected() <-chan struct{}
}

// NetStack is the IP stack running on the station interface.
type NetStack interface {
	Up(ctx context.Context) error
	// Address returns the assigned IPv4 address, if any.
	Address() (netip.Addr, bool)
}

// Restarter performs a full device restart.
type Restarter interface {
	Restart()
}

// RestartFunc adapts a function to the Restarter interface.
type RestartFunc func()

func (f RestartFunc) Restart() { f() }
