package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecordell/optgen/helpers"
	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/config"
	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/radio/sim"
	"github.com/kubev2v/wifi-provisioner/internal/services"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
	"github.com/kubev2v/wifi-provisioner/internal/transport"
)

// PayloadEnv carries a credentials payload provisioned at deploy time.
const PayloadEnv = "WM_CONN"

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Bring the device online, provisioning credentials if needed",
		Example: `  # Provision through the portal against a simulated radio
  provisioner run --sim-network HomeWifi:pw123456:-40

  # Persist credentials and restart the device after provisioning
  provisioner run --data-folder /var/lib/provisioner --restart-after-connection --sim-network HomeWifi:pw123456:-40

  # Provision from a payload set at deploy time
  WM_CONN='{"network_id":"HomeWifi","secret":"pw123456"}' provisioner run --sim-network HomeWifi:pw123456:-40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfiguration(cfg); err != nil {
				return err
			}

			zap.S().Infow("using configuration",
				"server", helpers.Flatten(cfg.Server.DebugMap()),
				"provisioning", helpers.Flatten(cfg.Provisioning.DebugMap()),
				"simulation", helpers.Flatten(cfg.Simulation.DebugMap()),
				"data_folder", cfg.DataFolder,
			)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()

			s, err := openStore(ctx, cfg.DataFolder)
			if err != nil {
				return err
			}
			defer s.Close()

			r, netstack, err := newSimRadio(cfg.Simulation)
			if err != nil {
				return err
			}

			settings := cfg.Provisioning.Settings()
			orchestrator := services.NewOrchestrator(settings, s.Credentials(), r, netstack, &sim.Restarter{}, newListeners(cfg, settings)...)
			orchestrator.OnSessionStart = func(bus *signals.Bus) {
				zap.S().Infow("provisioning access point up", "identifier", bus.Identifier, "session", bus.SessionID)
			}

			h, err := orchestrator.Run(ctx)
			switch {
			case errors.Is(err, services.ErrRestartTriggered):
				zap.S().Info("device restart requested, exiting")
				return nil
			case err != nil && ctx.Err() != nil:
				zap.S().Info("interrupted before the device came online")
				return nil
			case err != nil:
				zap.S().Errorw("failed to bring the device online", "error", err, "fatal", services.Fatal(err))
				return err
			}

			zap.S().Infow("device online", "address", h.Address, "network_id", h.Credentials.NetworkID, "session", h.SessionID)

			h.Wait()
			zap.S().Info("shutdown")

			return nil
		},
	}

	registerFlags(runCmd, cfg)

	return runCmd
}

func newListeners(cfg *config.Configuration, settings models.Settings) []services.Listener {
	var listeners []services.Listener
	if cfg.Server.Enabled {
		listeners = append(listeners, transport.NewWeb(cfg.Server, settings.ConnectTimeout))
		if cfg.Server.Advertise {
			listeners = append(listeners, transport.NewAdvertiser(cfg.Server.HTTPPort, transport.ZeroconfRegistrar(transport.DefaultTTL, cfg.Server.MDNSInterface)))
		}
	}
	if cfg.Provisioning.Payload != "" {
		listeners = append(listeners, transport.NewStatic(cfg.Provisioning.Payload))
	}
	return listeners
}

func registerFlags(cmd *cobra.Command, config *config.Configuration) {
	nfs := cobrautil.NewNamedFlagSets(cmd)

	provisioningFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Provisioning"))
	registerProvisioningFlags(provisioningFlagSet, config)

	serverFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Server"))
	registerServerFlags(serverFlagSet, config)

	simulationFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Simulation"))
	registerSimulationFlags(simulationFlagSet, config)

	nfs.AddFlagSets(cmd)
}

func validateConfiguration(cfg *config.Configuration) error {
	p := cfg.Provisioning
	if p.IdentifierPrefix == "" {
		return errors.New("identifier-prefix cannot be empty")
	}
	for name, d := range map[string]time.Duration{
		"connect-timeout": p.ConnectTimeout,
		"reconnect-delay": p.ReconnectDelay,
		"scan-interval":   p.ScanInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s %s: must be positive", name, d)
		}
	}
	if p.ResetDeadline < 0 {
		return fmt.Errorf("invalid reset-deadline %s: must not be negative", p.ResetDeadline)
	}
	if p.MaxSessionTasks < 1 {
		return fmt.Errorf("invalid max-session-tasks %d: must be at least 1", p.MaxSessionTasks)
	}

	if p.Payload != "" {
		if _, err := models.DecodeCredentials([]byte(p.Payload)); err != nil {
			return fmt.Errorf("invalid provision-payload: %w", err)
		}
	}

	switch config.ServerModeType(cfg.Server.ServerMode) {
	case config.ServerModeProd, config.ServerModeDev:
	default:
		return fmt.Errorf("invalid server mode %q: must be %q or %q", cfg.Server.ServerMode, config.ServerModeProd, config.ServerModeDev)
	}

	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port %d: must be between 1 and 65535", cfg.Server.HTTPPort)
	}

	if !cfg.Server.Enabled && p.Payload == "" && !p.HasResetDeadline() {
		return errors.New("no way to provision: enable the server, set provision-payload or set reset-deadline")
	}

	return nil
}

func registerProvisioningFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	if v := os.Getenv(PayloadEnv); v != "" && config.Provisioning.Payload == "" {
		config.Provisioning.Payload = v
	}

	flagSet.StringVar(&config.Provisioning.IdentifierPrefix, "identifier-prefix", config.Provisioning.IdentifierPrefix, "Prefix of the access point name advertised while provisioning")
	flagSet.DurationVar(&config.Provisioning.ConnectTimeout, "connect-timeout", config.Provisioning.ConnectTimeout, "Time allowed for one connect attempt")
	flagSet.DurationVar(&config.Provisioning.ReconnectDelay, "reconnect-delay", config.Provisioning.ReconnectDelay, "Delay between reconnect attempts once online")
	flagSet.DurationVar(&config.Provisioning.ScanInterval, "scan-interval", config.Provisioning.ScanInterval, "Interval between network scans while provisioning")
	flagSet.DurationVar(&config.Provisioning.ResetDeadline, "reset-deadline", config.Provisioning.ResetDeadline, "Restart the device if nothing was provisioned in time (0 disables)")
	flagSet.BoolVar(&config.Provisioning.RestartAfterConnection, "restart-after-connection", config.Provisioning.RestartAfterConnection, "Restart the device once credentials are provisioned")
	flagSet.BoolVar(&config.Provisioning.AccessPointEnabled, "access-point", config.Provisioning.AccessPointEnabled, "Host an access point while provisioning")
	flagSet.IntVar(&config.Provisioning.MaxSessionTasks, "max-session-tasks", config.Provisioning.MaxSessionTasks, "Maximum number of concurrent session tasks")
	flagSet.StringVar(&config.Provisioning.Payload, "provision-payload", config.Provisioning.Payload, "Credentials payload submitted when a session starts (env "+PayloadEnv+")")
	flagSet.StringVar(&config.DataFolder, "data-folder", config.DataFolder, "Path to the persistent data folder")
}

func registerServerFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.BoolVar(&config.Server.Enabled, "server-enabled", config.Server.Enabled, "Serve the provisioning portal")
	flagSet.IntVar(&config.Server.HTTPPort, "server-http-port", config.Server.HTTPPort, "Port on which the HTTP server is listening")
	flagSet.StringVar(&config.Server.StaticsFolder, "server-statics-folder", config.Server.StaticsFolder, "Path to the portal pages")
	flagSet.StringVar(&config.Server.ServerMode, "server-mode", config.Server.ServerMode, "Server mode: either prod or dev")
	flagSet.BoolVar(&config.Server.Advertise, "server-advertise", config.Server.Advertise, "Announce the portal over mDNS")
	flagSet.StringVar(&config.Server.MDNSInterface, "server-mdns-interface", config.Server.MDNSInterface, "Interface used for the mDNS announcement (all when empty)")
}

func registerSimulationFlags(flagSet *pflag.FlagSet, config *config.Configuration) {
	flagSet.StringVar(&config.Simulation.HardwareAddr, "sim-hardware-addr", config.Simulation.HardwareAddr, "Hardware address of the simulated radio")
	flagSet.StringVar(&config.Simulation.Address, "sim-address", config.Simulation.Address, "Address assigned once the simulated station is online")
	flagSet.StringSliceVar(&config.Simulation.Networks, "sim-network", config.Simulation.Networks, "Simulated network as <id>:<secret>:<signal>, repeatable")
}
