package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kubev2v/wifi-provisioner/internal/models"
)

type ServerModeType string

const (
	ServerModeProd ServerModeType = "prod"
	ServerModeDev  ServerModeType = "dev"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Provisioning Simulation
type Configuration struct {
	Server       Server       `debugmap:"visible" yaml:"server"`
	Provisioning Provisioning `debugmap:"visible" yaml:"provisioning"`
	Simulation   Simulation   `debugmap:"visible" yaml:"simulation"`
	DataFolder   string       `debugmap:"visible" yaml:"data_folder"`
	SettingsFile string       `debugmap:"visible" yaml:"-"`

	// Log
	LogFormat string `debugmap:"visible" default:"console" yaml:"log_format"`
	LogLevel  string `debugmap:"visible" default:"info" yaml:"log_level"`
}

// Server configures the provisioning portal.
type Server struct {
	Enabled       bool   `debugmap:"visible" default:"true" yaml:"enabled"`
	HTTPPort      int    `debugmap:"visible" default:"8080" yaml:"http_port"`
	ServerMode    string `debugmap:"visible" default:"dev" yaml:"mode"`
	StaticsFolder string `debugmap:"visible" yaml:"statics_folder"`
	// Advertise announces the portal over mDNS while a session runs.
	Advertise bool `debugmap:"visible" default:"true" yaml:"advertise"`
	// MDNSInterface restricts the announcement to one interface.
	MDNSInterface string `debugmap:"visible" yaml:"mdns_interface"`
}

type Provisioning struct {
	IdentifierPrefix       string        `debugmap:"visible" default:"ESP" yaml:"identifier_prefix"`
	ConnectTimeout         time.Duration `debugmap:"visible" default:"15s" yaml:"connect_timeout"`
	ReconnectDelay         time.Duration `debugmap:"visible" default:"1s" yaml:"reconnect_delay"`
	ScanInterval           time.Duration `debugmap:"visible" default:"15s" yaml:"scan_interval"`
	ResetDeadline          time.Duration `debugmap:"visible" yaml:"reset_deadline"`
	RestartAfterConnection bool          `debugmap:"visible" yaml:"restart_after_connection"`
	AccessPointEnabled     bool          `debugmap:"visible" default:"true" yaml:"access_point_enabled"`
	MaxSessionTasks        int           `debugmap:"visible" default:"8" yaml:"max_session_tasks"`
	// Payload is a serialized credentials document submitted as soon as a session starts.
	Payload string `debugmap:"sensitive" yaml:"payload"`
}

// Simulation configures the in-memory radio.
type Simulation struct {
	HardwareAddr string `debugmap:"visible" default:"24:6f:28:0a:0b:0c" yaml:"hardware_addr"`
	Address      string `debugmap:"visible" default:"192.168.4.2" yaml:"address"`
	// Networks are "<id>:<secret>:<signal>" triples.
	Networks []string `debugmap:"sensitive" yaml:"networks"`
}

// Settings converts the provisioning section into session settings.
func (p Provisioning) Settings() models.Settings {
	s := models.DefaultSettings()
	s.IdentifierPrefix = p.IdentifierPrefix
	s.ConnectTimeout = p.ConnectTimeout
	s.ReconnectDelay = p.ReconnectDelay
	s.ScanInterval = p.ScanInterval
	s.ResetDeadline = p.ResetDeadline
	s.RestartAfterConnection = p.RestartAfterConnection
	s.AccessPointEnabled = p.AccessPointEnabled
	s.MaxSessionTasks = p.MaxSessionTasks
	return s
}

// LoadFile overlays the YAML document at path onto c. Keys absent from the file keep
// their current value.
func (c *Configuration) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return nil
}
