package services_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/radio"
	"github.com/kubev2v/wifi-provisioner/internal/radio/sim"
	"github.com/kubev2v/wifi-provisioner/internal/services"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
)

type coordinatorResult struct {
	creds models.Credentials
	err   error
}

var _ = Describe("Coordinator", func() {
	var (
		ctx       context.Context
		cancel    context.CancelFunc
		settings  models.Settings
		bus       *signals.Bus
		r         *sim.Radio
		st        *memoryStore
		restarter *sim.Restarter
		base      radio.Config
		results   chan coordinatorResult
		done      chan struct{}
	)

	start := func() *services.Coordinator {
		c := services.NewCoordinator(settings, bus, r, base, st, restarter)
		runCtx, out, exited := ctx, results, make(chan struct{})
		done = exited
		go func() {
			defer close(exited)
			creds, err := c.Run(runCtx)
			out <- coordinatorResult{creds: creds, err: err}
		}()
		return c
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		settings = fastSettings()
		bus = signals.NewBus("session-1", "ESP-246F280A0B0C")
		r = sim.NewRadio(testHW, sim.AccessPoint{ID: homeWifi.NetworkID, Secret: homeWifi.Secret, Signal: homeSignal})
		st = &memoryStore{}
		restarter = &sim.Restarter{}
		results = make(chan coordinatorResult, 1)
		done = nil

		base = radio.Config{Mode: radio.ModeAccessPointStation, AccessPointID: bus.Identifier}
		Expect(r.Configure(base)).To(Succeed())
		Expect(r.Start(ctx)).To(Succeed())
	})

	AfterEach(func() {
		cancel()
		if done != nil {
			Eventually(done).WithTimeout(2 * time.Second).Should(BeClosed())
		}
	})

	It("scans on the first tick", func() {
		start()

		Eventually(func() bool {
			snapshot, ok := bus.Scans.Load()
			return ok && snapshot.Contains(homeWifi.NetworkID, homeSignal)
		}).WithTimeout(time.Second).Should(BeTrue())
	})

	It("replaces the scan snapshot as the air changes", func() {
		start()
		Eventually(bus.Scans.Version).WithTimeout(time.Second).Should(BeNumerically(">=", 1))

		r.AddNetwork(sim.AccessPoint{ID: "Cafe", Signal: -70})

		Eventually(func() bool {
			snapshot, _ := bus.Scans.Load()
			return snapshot.Contains("Cafe", -70) && snapshot.Contains(homeWifi.NetworkID, homeSignal)
		}).WithTimeout(time.Second).Should(BeTrue())
	})

	It("provisions valid credentials", func() {
		c := start()
		end := bus.End.Subscribe()

		payload, err := homeWifi.Encode()
		Expect(err).NotTo(HaveOccurred())
		ticket := bus.Submit(payload)

		var res coordinatorResult
		Eventually(results).WithTimeout(2 * time.Second).Should(Receive(&res))
		Expect(res.err).NotTo(HaveOccurred())
		Expect(res.creds).To(Equal(homeWifi))

		Expect(end).To(BeClosed())
		Expect(bus.End.Deliveries()).To(Equal(1))

		answer, ok := bus.Result.Load()
		Expect(ok).To(BeTrue())
		Expect(answer.Outcome).To(Equal(models.OutcomeConnected))
		Expect(answer.Submission).To(Equal(ticket))

		saved, _ := st.Saved()
		Expect(saved).To(Equal(&homeWifi))
		Expect(r.IsConnected()).To(BeTrue())
		Expect(r.Config().Mode).To(Equal(radio.ModeAccessPointStation))
		Expect(r.Config().AccessPointID).To(Equal(bus.Identifier))
		Expect(c.State()).To(Equal(models.SessionStateProvisioned))
	})

	It("discards undecodable submissions without touching the radio or the store", func() {
		start()
		Eventually(bus.Scans.Version).WithTimeout(time.Second).Should(BeNumerically(">=", 1))
		configures := r.Stats().Configure

		bus.Submit([]byte(`{"network_id": 12`))

		Eventually(bus.Submissions.Pending).Should(BeFalse())
		Consistently(func() int { return r.Stats().Configure }).WithTimeout(100 * time.Millisecond).Should(Equal(configures))
		Expect(bus.Result.Version()).To(BeZero())
		Expect(r.Config()).To(Equal(base))
		_, saves := st.Saved()
		Expect(saves).To(BeZero())
		Expect(bus.End.Published()).To(BeFalse())
		Expect(results).NotTo(Receive())
	})

	It("keeps the session open after a rejected secret", func() {
		c := start()

		payload, _ := models.Credentials{NetworkID: homeWifi.NetworkID, Secret: "wrong-secret"}.Encode()
		bus.Submit(payload)

		Eventually(bus.Result.Version).WithTimeout(time.Second).Should(BeNumerically("==", 1))
		outcome, _ := bus.LastOutcome()
		Expect(outcome).To(Equal(models.OutcomeRejected))
		Eventually(c.State).Should(Equal(models.SessionStateWaiting))
		Expect(bus.End.Published()).To(BeFalse())

		payload, _ = homeWifi.Encode()
		bus.Submit(payload)

		var res coordinatorResult
		Eventually(results).WithTimeout(2 * time.Second).Should(Receive(&res))
		Expect(res.err).NotTo(HaveOccurred())
		Expect(res.creds).To(Equal(homeWifi))
	})

	It("reports a timeout for a network that never answers", func() {
		start()

		payload, _ := models.Credentials{NetworkID: "Elsewhere", Secret: "whatever1"}.Encode()
		bus.Submit(payload)

		Eventually(bus.Result.Version).WithTimeout(2 * time.Second).Should(BeNumerically("==", 1))
		outcome, _ := bus.LastOutcome()
		Expect(outcome).To(Equal(models.OutcomeTimedOut))
		Expect(results).NotTo(Receive())
	})

	It("finishes provisioning when persisting fails", func() {
		st.saveErr = errors.New("flash write failed")
		start()

		payload, _ := homeWifi.Encode()
		bus.Submit(payload)

		var res coordinatorResult
		Eventually(results).WithTimeout(2 * time.Second).Should(Receive(&res))
		Expect(res.err).NotTo(HaveOccurred())
		Expect(res.creds).To(Equal(homeWifi))
		Expect(bus.End.Published()).To(BeTrue())
	})

	It("fails when the radio rejects the configuration", func() {
		r.FailConfigure(errors.New("driver busy"))
		start()

		payload, _ := homeWifi.Encode()
		bus.Submit(payload)

		var res coordinatorResult
		Eventually(results).WithTimeout(time.Second).Should(Receive(&res))
		Expect(errors.Is(res.err, services.ErrRadioConfig)).To(BeTrue())
		Expect(services.Fatal(res.err)).To(BeTrue())
	})

	It("restarts the device once the reset deadline passes", func() {
		settings.ResetDeadline = 150 * time.Millisecond
		started := time.Now()
		c := start()

		var res coordinatorResult
		Eventually(results).WithTimeout(time.Second).Should(Receive(&res))
		Expect(res.err).To(MatchError(services.ErrRestartTriggered))
		Expect(restarter.Count()).To(Equal(1))
		Expect(restarter.LastAt().Sub(started)).To(BeNumerically("<",
			settings.ResetDeadline+settings.PollInterval+100*time.Millisecond))
		Expect(c.State()).To(Equal(models.SessionStateRestarting))
	})

	It("cuts a slow scan short at the reset deadline", func() {
		settings.ResetDeadline = 150 * time.Millisecond
		settings.ConnectTimeout = 2 * time.Second
		r.SetScanLatency(1500 * time.Millisecond)
		started := time.Now()
		start()

		var res coordinatorResult
		Eventually(results).WithTimeout(time.Second).Should(Receive(&res))
		Expect(res.err).To(MatchError(services.ErrRestartTriggered))
		Expect(restarter.Count()).To(Equal(1))
		Expect(restarter.LastAt().Sub(started)).To(BeNumerically("<",
			settings.ResetDeadline+settings.PollInterval+100*time.Millisecond))
		Expect(bus.Scans.Version()).To(BeZero())
	})

	It("cuts a hanging connect attempt short at the reset deadline", func() {
		settings.ResetDeadline = 150 * time.Millisecond
		settings.ConnectTimeout = 2 * time.Second
		started := time.Now()
		start()

		payload, _ := models.Credentials{NetworkID: "Elsewhere", Secret: "whatever1"}.Encode()
		bus.Submit(payload)

		var res coordinatorResult
		Eventually(results).WithTimeout(time.Second).Should(Receive(&res))
		Expect(res.err).To(MatchError(services.ErrRestartTriggered))
		Expect(restarter.LastAt().Sub(started)).To(BeNumerically("<",
			settings.ResetDeadline+settings.PollInterval+100*time.Millisecond))
		outcome, ok := bus.LastOutcome()
		Expect(ok).To(BeTrue())
		Expect(outcome).To(Equal(models.OutcomeTimedOut))
	})

	It("never restarts without a reset deadline", func() {
		start()

		Consistently(restarter.Count).WithTimeout(200 * time.Millisecond).Should(BeZero())
	})

	It("stops when the context is cancelled", func() {
		start()
		cancel()

		var res coordinatorResult
		Eventually(results).WithTimeout(time.Second).Should(Receive(&res))
		Expect(res.err).To(MatchError(context.Canceled))
	})
})
