package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/kubev2v/wifi-provisioner/internal/config"
	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/radio/sim"
	"github.com/kubev2v/wifi-provisioner/internal/store"
)

var _ = Describe("parseNetwork", func() {
	DescribeTable("valid",
		func(in string, want sim.AccessPoint) {
			ap, err := parseNetwork(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(ap).To(Equal(want))
		},
		Entry("plain", "HomeWifi:pw123456:-40", sim.AccessPoint{ID: "HomeWifi", Secret: "pw123456", Signal: -40}),
		Entry("colon in secret", "Lab:a:b:c:-71", sim.AccessPoint{ID: "Lab", Secret: "a:b:c", Signal: -71}),
		Entry("open network", "Cafe::-80", sim.AccessPoint{ID: "Cafe", Secret: "", Signal: -80}),
	)

	DescribeTable("invalid",
		func(in string) {
			_, err := parseNetwork(in)
			Expect(err).To(HaveOccurred())
		},
		Entry("no separators", "HomeWifi"),
		Entry("one separator", "HomeWifi:-40"),
		Entry("empty id", ":pw:-40"),
		Entry("bad signal", "HomeWifi:pw:strong"),
	)
})

var _ = Describe("newSimRadio", func() {
	It("builds a radio that knows the configured networks", func() {
		cfg := config.NewSimulationWithOptionsAndDefaults(config.WithNetworks("HomeWifi:pw123456:-40"))

		r, netstack, err := newSimRadio(*cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.HardwareAddr().String()).To(Equal("24:6f:28:0a:0b:0c"))

		ctx := context.Background()
		Expect(r.Start(ctx)).To(Succeed())
		snapshot, err := r.Scan(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(snapshot.Contains("HomeWifi", -40)).To(BeTrue())

		_, ok := netstack.Address()
		Expect(ok).To(BeFalse())
	})

	It("rejects a bad hardware address", func() {
		cfg := config.NewSimulationWithOptionsAndDefaults(config.WithHardwareAddr("nope"))

		_, _, err := newSimRadio(*cfg)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("validateConfiguration", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
	})

	It("accepts the defaults", func() {
		Expect(validateConfiguration(cfg)).To(Succeed())
	})

	It("rejects a non-positive connect timeout", func() {
		cfg.Provisioning.ConnectTimeout = 0
		Expect(validateConfiguration(cfg)).To(MatchError(ContainSubstring("connect-timeout")))
	})

	It("rejects a payload that does not decode", func() {
		cfg.Provisioning.Payload = `{"network_id":`
		Expect(validateConfiguration(cfg)).To(MatchError(ContainSubstring("provision-payload")))
	})

	It("requires some way to provision", func() {
		cfg.Server.Enabled = false
		Expect(validateConfiguration(cfg)).To(HaveOccurred())

		cfg.Provisioning.Payload = `{"network_id":"HomeWifi","secret":"pw123456"}`
		Expect(validateConfiguration(cfg)).To(Succeed())
	})
})

var _ = Describe("newListeners", func() {
	It("follows the server and payload settings", func() {
		cfg := config.NewConfigurationWithOptionsAndDefaults()
		settings := models.DefaultSettings()

		names := func() []string {
			var out []string
			for _, l := range newListeners(cfg, settings) {
				out = append(out, l.Name())
			}
			return out
		}

		Expect(names()).To(Equal([]string{"web", "mdns"}))

		cfg.Server.Advertise = false
		cfg.Provisioning.Payload = `{"network_id":"HomeWifi","secret":"pw123456"}`
		Expect(names()).To(Equal([]string{"web", "static"}))

		cfg.Server.Enabled = false
		Expect(names()).To(Equal([]string{"static"}))
	})
})

var _ = Describe("ApplySettingsFile", func() {
	var (
		cfg  *config.Configuration
		cmd  *cobra.Command
		path string
	)

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
		cmd = &cobra.Command{Use: "run", RunE: func(*cobra.Command, []string) error { return nil }}
		registerFlags(cmd, cfg)

		path = filepath.Join(GinkgoT().TempDir(), "settings.yaml")
		Expect(os.WriteFile(path, []byte(`
provisioning:
  identifier_prefix: DEV
  connect_timeout: 30s
simulation:
  networks:
    - "FromFile:pw123456:-50"
`), 0o600)).To(Succeed())
		cfg.SettingsFile = path
	})

	It("lets the file override defaults", func() {
		Expect(cmd.ParseFlags([]string{})).To(Succeed())
		Expect(ApplySettingsFile(cmd, cfg)).To(Succeed())

		Expect(cfg.Provisioning.IdentifierPrefix).To(Equal("DEV"))
		Expect(cfg.Provisioning.ConnectTimeout).To(Equal(30 * time.Second))
		Expect(cfg.Simulation.Networks).To(Equal([]string{"FromFile:pw123456:-50"}))
	})

	It("keeps explicit flags over the file", func() {
		Expect(cmd.ParseFlags([]string{"--identifier-prefix", "CLI", "--sim-network", "FromFlag:pw:-30"})).To(Succeed())
		Expect(ApplySettingsFile(cmd, cfg)).To(Succeed())

		Expect(cfg.Provisioning.IdentifierPrefix).To(Equal("CLI"))
		Expect(cfg.Provisioning.ConnectTimeout).To(Equal(30 * time.Second))
		Expect(cfg.Simulation.Networks).To(Equal([]string{"FromFlag:pw:-30"}))
	})
})

var _ = Describe("clear command", func() {
	It("deletes the stored credentials", func() {
		ctx := context.Background()
		dataFolder := GinkgoT().TempDir()

		s, err := openStore(ctx, dataFolder)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Credentials().Save(ctx, &models.Credentials{NetworkID: "HomeWifi", Secret: "pw123456"})).To(Succeed())
		Expect(s.Close()).To(Succeed())

		cfg := config.NewConfigurationWithOptionsAndDefaults()
		clearCmd := NewClearCommand(cfg)
		clearCmd.SetArgs([]string{"--data-folder", dataFolder})
		Expect(clearCmd.Execute()).To(Succeed())

		s, err = openStore(ctx, dataFolder)
		Expect(err).NotTo(HaveOccurred())
		defer s.Close()
		_, err = s.Credentials().Get(ctx)
		Expect(err).To(MatchError(store.ErrNotFound))
	})

	It("needs a data folder", func() {
		clearCmd := NewClearCommand(config.NewConfigurationWithOptionsAndDefaults())
		clearCmd.SetArgs([]string{})
		clearCmd.SilenceUsage = true
		clearCmd.SilenceErrors = true
		Expect(clearCmd.Execute()).To(HaveOccurred())
	})
})
