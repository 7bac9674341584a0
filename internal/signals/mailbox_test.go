package signals_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/wifi-provisioner/internal/models"
	"github.com/kubev2v/wifi-provisioner/internal/signals"
)

var _ = Describe("Mailbox", func() {
	var mb *signals.Mailbox[string]

	BeforeEach(func() {
		mb = signals.NewMailbox[string]()
	})

	It("should start empty", func() {
		_, ok := mb.Load()
		Expect(ok).To(BeFalse())

		_, ok = mb.TryTake()
		Expect(ok).To(BeFalse())
		Expect(mb.Pending()).To(BeFalse())
	})

	It("should collapse a burst of writes to the last value", func() {
		mb.Put("first")
		mb.Put("second")
		mb.Put("third")

		v, ok := mb.TryTake()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("third"))

		// no queued history behind the latest value
		_, ok = mb.TryTake()
		Expect(ok).To(BeFalse())
		Expect(mb.Version()).To(Equal(uint64(3)))
	})

	It("should keep the latest value readable after it was taken", func() {
		mb.Put("scan")
		_, _ = mb.TryTake()

		v, ok := mb.Load()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("scan"))
	})

	It("should wake a blocked reader", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		got := make(chan string, 1)
		go func() {
			defer GinkgoRecover()
			v, err := mb.Take(ctx)
			Expect(err).NotTo(HaveOccurred())
			got <- v
		}()

		Consistently(got, 50*time.Millisecond).ShouldNot(Receive())
		mb.Put("hello")
		Eventually(got).Should(Receive(Equal("hello")))
	})

	It("should return the context error when nothing arrives", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := mb.Take(ctx)
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})

	It("should never expose a partially written snapshot", func() {
		scans := signals.NewMailbox[models.ScanSnapshot]()
		full := models.ScanSnapshot{{ID: "a", Signal: -40}, {ID: "b", Signal: -50}, {ID: "c", Signal: -60}}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				scans.Put(full)
			}
		}()
		for i := 0; i < 200; i++ {
			if s, ok := scans.Load(); ok {
				Expect(s).To(HaveLen(3))
			}
		}
		wg.Wait()
	})
})

var _ = Describe("Broadcast", func() {
	It("should notify every subscriber registered before publish", func() {
		b := signals.NewBroadcast()
		subs := []<-chan struct{}{b.Subscribe(), b.Subscribe(), b.Subscribe()}

		Expect(b.Publish()).To(BeTrue())

		for _, s := range subs {
			Eventually(s).Should(BeClosed())
		}
		Expect(b.Deliveries()).To(Equal(3))
	})

	It("should not notify a subscriber registered after publish", func() {
		b := signals.NewBroadcast()
		b.Publish()

		late := b.Subscribe()
		Consistently(late, 50*time.Millisecond).ShouldNot(BeClosed())
	})

	It("should fire only once", func() {
		b := signals.NewBroadcast()
		s := b.Subscribe()

		Expect(b.Publish()).To(BeTrue())
		Expect(b.Publish()).To(BeFalse())
		Expect(s).To(BeClosed())
		Expect(b.Deliveries()).To(Equal(1))
		Expect(b.Published()).To(BeTrue())
	})
})

var _ = Describe("Bus", func() {
	It("should copy submitted payloads", func() {
		bus := signals.NewBus("session", "ESP-1")
		payload := []byte(`{"network_id":"x"}`)
		bus.Submit(payload)
		payload[2] = 'X'

		got, ok := bus.Submissions.TryTake()
		Expect(ok).To(BeTrue())
		Expect(string(got)).To(Equal(`{"network_id":"x"}`))
	})

	It("should remember the last outcome after it was consumed", func() {
		bus := signals.NewBus("session", "ESP-1")
		bus.Answer(1, models.OutcomeRejected)
		_, _ = bus.Result.TryTake()

		o, ok := bus.LastOutcome()
		Expect(ok).To(BeTrue())
		Expect(o).To(Equal(models.OutcomeRejected))
	})

	It("should hand out increasing tickets", func() {
		bus := signals.NewBus("session", "ESP-1")
		first := bus.Submit([]byte("a"))
		second := bus.Submit([]byte("b"))
		Expect(second).To(BeNumerically(">", first))

		payload, ticket, ok := bus.TakeSubmission()
		Expect(ok).To(BeTrue())
		Expect(string(payload)).To(Equal("b"))
		Expect(ticket).To(Equal(second))
	})

	It("should skip answers to earlier submissions", func() {
		bus := signals.NewBus("session", "ESP-1")
		first := bus.Submit([]byte("a"))
		second := bus.Submit([]byte("b"))

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		got := make(chan models.ConnectionOutcome, 1)
		go func() {
			defer GinkgoRecover()
			o, err := bus.AwaitAnswer(ctx, second)
			Expect(err).NotTo(HaveOccurred())
			got <- o
		}()

		bus.Answer(first, models.OutcomeConnected)
		Consistently(got).WithTimeout(50 * time.Millisecond).ShouldNot(Receive())
		bus.Answer(second, models.OutcomeRejected)
		Eventually(got).Should(Receive(Equal(models.OutcomeRejected)))
	})

	It("should report a superseded submission", func() {
		bus := signals.NewBus("session", "ESP-1")
		first := bus.Submit([]byte("a"))
		second := bus.Submit([]byte("b"))
		bus.Answer(second, models.OutcomeConnected)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, err := bus.AwaitAnswer(ctx, first)
		Expect(err).To(MatchError(signals.ErrSuperseded))
	})

	It("should report status", func() {
		bus := signals.NewBus("session", "ESP-1")
		Expect(bus.Status().LastOutcome).To(BeNil())
		Expect(bus.Status().Provisioned).To(BeFalse())

		bus.Answer(1, models.OutcomeConnected)
		bus.End.Publish()

		status := bus.Status()
		Expect(status.SessionID).To(Equal("session"))
		Expect(status.Identifier).To(Equal("ESP-1"))
		Expect(*status.LastOutcome).To(Equal(models.OutcomeConnected))
		Expect(status.Provisioned).To(BeTrue())
	})
})
