package cmd

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/kubev2v/wifi-provisioner/internal/config"
	"github.com/kubev2v/wifi-provisioner/internal/radio/sim"
)

// parseNetwork reads "<id>:<secret>:<signal>". The id runs to the first colon and
// the signal starts after the last one, so secrets may contain colons.
func parseNetwork(s string) (sim.AccessPoint, error) {
	first := strings.Index(s, ":")
	last := strings.LastIndex(s, ":")
	if first <= 0 || first == last {
		return sim.AccessPoint{}, fmt.Errorf("invalid network %q: want <id>:<secret>:<signal>", s)
	}

	signal, err := strconv.Atoi(s[last+1:])
	if err != nil {
		return sim.AccessPoint{}, fmt.Errorf("invalid signal in network %q: %w", s, err)
	}

	return sim.AccessPoint{
		ID:     s[:first],
		Secret: s[first+1 : last],
		Signal: signal,
	}, nil
}

func newSimRadio(cfg config.Simulation) (*sim.Radio, *sim.NetStack, error) {
	hw, err := net.ParseMAC(cfg.HardwareAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sim-hardware-addr: %w", err)
	}
	addr, err := netip.ParseAddr(cfg.Address)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sim-address: %w", err)
	}

	networks := make([]sim.AccessPoint, 0, len(cfg.Networks))
	for _, n := range cfg.Networks {
		ap, err := parseNetwork(n)
		if err != nil {
			return nil, nil, err
		}
		networks = append(networks, ap)
	}

	r := sim.NewRadio(hw, networks...)
	return r, sim.NewNetStack(r, addr), nil
}
