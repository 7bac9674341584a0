package models

import (
	"fmt"
	"math/big"
	"net"
	"strings"
	"time"
)

const (
	DefaultIdentifierPrefix = "ESP"
	DefaultConnectTimeout   = 15 * time.Second
	DefaultReconnectDelay   = 1 * time.Second
	DefaultScanInterval     = 15 * time.Second
	DefaultPollInterval     = 100 * time.Millisecond
	DefaultGracePeriod      = 1 * time.Second
	DefaultMaxSessionTasks  = 8
)

// Settings are supplied once at startup and never change during a session.
type Settings struct {
	IdentifierPrefix string
	ConnectTimeout   time.Duration
	ReconnectDelay   time.Duration
	ScanInterval     time.Duration
	// ResetDeadline restarts the device if no credentials were provisioned in time.
	// Zero disables it.
	ResetDeadline          time.Duration
	RestartAfterConnection bool
	// AccessPointEnabled selects dual access-point+station mode during provisioning.
	AccessPointEnabled bool

	PollInterval    time.Duration
	GracePeriod     time.Duration
	MaxSessionTasks int
}

func DefaultSettings() Settings {
	return Settings{
		IdentifierPrefix:   DefaultIdentifierPrefix,
		ConnectTimeout:     DefaultConnectTimeout,
		ReconnectDelay:     DefaultReconnectDelay,
		ScanInterval:       DefaultScanInterval,
		AccessPointEnabled: true,
		PollInterval:       DefaultPollInterval,
		GracePeriod:        DefaultGracePeriod,
		MaxSessionTasks:    DefaultMaxSessionTasks,
	}
}

// HasResetDeadline reports whether a reset deadline is configured.
func (s Settings) HasResetDeadline() bool {
	return s.ResetDeadline > 0
}

// FallbackIdentifier derives the access point name advertised during provisioning.
// The hardware address is read as a big-endian integer and printed in uppercase hex.
func FallbackIdentifier(prefix string, hw net.HardwareAddr) string {
	n := new(big.Int).SetBytes(hw)
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(n.Text(16)))
}
