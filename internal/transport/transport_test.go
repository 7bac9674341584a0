package transport_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/wifi-provisioner/internal/config"
	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
	"github.com/kubev2v/wifi-provisioner/internal/transport"
)

func serve(ctx context.Context, l interface {
	Serve(context.Context, *signals.Bus, <-chan struct{}) error
}, bus *signals.Bus) <-chan error {
	end := bus.End.Subscribe()
	errCh := make(chan error, 1)
	go func() {
		errCh <- l.Serve(ctx, bus, end)
	}()
	return errCh
}

var _ = Describe("Web", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		bus    *signals.Bus
		web    *transport.Web
	)

	url := func(path string) string {
		addr := web.Addr().(*net.TCPAddr)
		return fmt.Sprintf("http://127.0.0.1:%d%s", addr.Port, path)
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		bus = signals.NewBus("session-1", "ESP-246F280A0B0C")
		web = transport.NewWeb(config.Server{HTTPPort: 0, ServerMode: string(config.ServerModeProd)}, time.Second)
	})

	AfterEach(func() {
		cancel()
	})

	It("serves the session until it ends", func() {
		errCh := serve(ctx, web, bus)
		Eventually(web.Addr).WithTimeout(time.Second).ShouldNot(BeNil())

		bus.Scans.Put(models.ScanSnapshot{{ID: "HomeWifi", Signal: -40}})
		resp, err := http.Get(url("/api/v1/networks?format=text"))
		Expect(err).NotTo(HaveOccurred())
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		Expect(string(body)).To(Equal("HomeWifi: -40\n"))

		resp, err = http.Post(url("/api/v1/setup"), "application/json", strings.NewReader(`{"network_id":"HomeWifi","secret":"pw123456"}`))
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusAccepted))
		Expect(bus.Submissions.Pending()).To(BeTrue())

		bus.End.Publish()

		Eventually(errCh).WithTimeout(3 * time.Second).Should(Receive(BeNil()))
		Expect(web.Addr()).To(BeNil())
	})

	It("stops with the context", func() {
		errCh := serve(ctx, web, bus)
		Eventually(web.Addr).WithTimeout(time.Second).ShouldNot(BeNil())

		cancel()

		Eventually(errCh).WithTimeout(3 * time.Second).Should(Receive(BeNil()))
	})

	It("fails when the port is taken", func() {
		ln, err := net.Listen("tcp", "0.0.0.0:0")
		Expect(err).NotTo(HaveOccurred())
		defer ln.Close()

		web = transport.NewWeb(config.Server{HTTPPort: ln.Addr().(*net.TCPAddr).Port}, time.Second)
		errCh := serve(ctx, web, bus)

		Eventually(errCh).WithTimeout(time.Second).Should(Receive(HaveOccurred()))
	})
})

var _ = Describe("Static", func() {
	It("submits its payload once and waits for the end", func() {
		bus := signals.NewBus("session-1", "ESP-1")
		static := transport.NewStatic(`{"network_id":"HomeWifi","secret":"pw123456"}`)

		errCh := serve(context.Background(), static, bus)

		Eventually(bus.Submissions.Pending).Should(BeTrue())
		payload, _ := bus.Submissions.TryTake()
		Expect(string(payload)).To(Equal(`{"network_id":"HomeWifi","secret":"pw123456"}`))
		Consistently(errCh).WithTimeout(50 * time.Millisecond).ShouldNot(Receive())

		bus.End.Publish()
		Eventually(errCh).Should(Receive(BeNil()))
		Expect(bus.Submissions.Pending()).To(BeFalse())
	})
})

type fakeRegistrar struct {
	mu        sync.Mutex
	instance  string
	service   string
	port      int
	txt       []string
	withdrawn bool
	err       error
}

func (f *fakeRegistrar) register(instance, service, domain string, port int, txt []string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.instance, f.service, f.port, f.txt = instance, service, port, txt
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.withdrawn = true
	}, nil
}

func (f *fakeRegistrar) Withdrawn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.withdrawn
}

func (f *fakeRegistrar) Instance() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.instance
}

var _ = Describe("Advertiser", func() {
	It("announces the portal for the life of the session", func() {
		reg := &fakeRegistrar{}
		bus := signals.NewBus("session-1", "ESP-246F280A0B0C")
		advertiser := transport.NewAdvertiser(8080, reg.register)

		errCh := serve(context.Background(), advertiser, bus)

		Eventually(reg.Instance).Should(Equal("ESP-246F280A0B0C"))
		reg.mu.Lock()
		Expect(reg.service).To(Equal(transport.ServiceType))
		Expect(reg.port).To(Equal(8080))
		Expect(reg.txt).To(ContainElement("session=session-1"))
		reg.mu.Unlock()
		Expect(reg.Withdrawn()).To(BeFalse())

		bus.End.Publish()

		Eventually(errCh).Should(Receive(BeNil()))
		Expect(reg.Withdrawn()).To(BeTrue())
	})

	It("reports a registration failure", func() {
		reg := &fakeRegistrar{err: errors.New("no multicast interface")}
		bus := signals.NewBus("session-1", "ESP-1")

		errCh := serve(context.Background(), transport.NewAdvertiser(8080, reg.register), bus)

		var err error
		Eventually(errCh).Should(Receive(&err))
		Expect(err).To(MatchError(ContainSubstring("no multicast interface")))
	})
})
