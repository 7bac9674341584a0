package signals

import "sync"

// Broadcast is a one-shot, multi-subscriber notification.
type Broadcast struct {
	mu          sync.Mutex
	subscribers []chan struct{}
	published   bool
	deliveries  int
}

func NewBroadcast() *Broadcast {
	return &Broadcast{}
}

// Subscribe registers a subscriber. The returned channel is closed when Publish
// is called, unless Publish already happened, in which case it is never closed.
func (b *Broadcast) Subscribe() <-chan struct{} {
	ch := make(chan struct{})
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.published {
		b.subscribers = append(b.subscribers, ch)
	}
	return ch
}

// Publish notifies every registered subscriber. Only the first call has an effect;
// it reports whether this call was the one that fired.
func (b *Broadcast) Publish() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.published {
		return false
	}
	b.published = true
	for _, ch := range b.subscribers {
		close(ch)
		b.deliveries++
	}
	b.subscribers = nil
	return true
}

// Published reports whether Publish has fired.
func (b *Broadcast) Published() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published
}

// Deliveries is the number of subscribers that were notified.
func (b *Broadcast) Deliveries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deliveries
}
