package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/enbility/zeroconf/v3"
	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/signals"
)

const (
	ServiceType = "_http._tcp"
	Domain      = "local."
	// DefaultTTL is the record TTL in seconds.
	DefaultTTL = 120
)

// Registrar publishes an mDNS service and returns the function that withdraws it.
type Registrar func(instance, service, domain string, port int, txt []string) (func(), error)

// ZeroconfRegistrar registers on the named interface, or on every multicast
// interface when iface is empty or unknown.
func ZeroconfRegistrar(ttl uint32, iface string) Registrar {
	return func(instance, service, domain string, port int, txt []string) (func(), error) {
		ifaces := interfaces(iface)
		server, err := zeroconf.Register(instance, service, domain, port, txt, ifaces, zeroconf.TTL(ttl))
		if err != nil {
			return nil, err
		}
		return server.Shutdown, nil
	}
}

func interfaces(name string) []net.Interface {
	if name == "" {
		return nil
	}
	iface, err := net.InterfaceByName(name)
	if err != nil {
		zap.S().Named("mdns").Warnw("unknown interface, advertising on all", "interface", name, "error", err)
		return nil
	}
	return []net.Interface{*iface}
}

// Advertiser announces the provisioning portal under the session identifier so
// clients on the access point can find it without knowing its address.
type Advertiser struct {
	port     int
	register Registrar
}

func NewAdvertiser(port int, register Registrar) *Advertiser {
	if register == nil {
		register = ZeroconfRegistrar(DefaultTTL, "")
	}
	return &Advertiser{port: port, register: register}
}

func (a *Advertiser) Name() string { return "mdns" }

func (a *Advertiser) Serve(ctx context.Context, bus *signals.Bus, end <-chan struct{}) error {
	txt := []string{
		"session=" + bus.SessionID,
		"id=" + bus.Identifier,
		"path=/api/v1",
	}
	shutdown, err := a.register(bus.Identifier, ServiceType, Domain, a.port, txt)
	if err != nil {
		return fmt.Errorf("failed to register portal service: %w", err)
	}
	defer shutdown()

	zap.S().Named("mdns").Infow("portal advertised", "instance", bus.Identifier, "service", ServiceType, "port", a.port)

	select {
	case <-end:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
