package telemetry

import (
	"sync"
)

// DefaultBuffer is the per-subscription queue depth.
const DefaultBuffer = 16

// Bus delivers payloads to subscribers by event name. Each subscriber sees
// events in publish order. A subscriber that falls behind loses its oldest
// queued event rather than blocking the publisher.
type Bus struct {
	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	closed bool

	// OnDrop, if set, is called whenever a queued event is discarded.
	OnDrop func(event string)
}

// NewBus creates a bus with the given per-subscription buffer (0 uses DefaultBuffer).
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscription receives payloads for one event name.
type Subscription struct {
	bus   *Bus
	event string
	ch    chan Payload
	once  sync.Once
}

// C returns the receive channel. It is closed when the subscription or bus closes.
func (s *Subscription) C() <-chan Payload {
	return s.ch
}

// Event returns the subscribed event name.
func (s *Subscription) Event() string {
	return s.event
}

// Close removes the subscription from its bus.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	s.closeLocked()
}

func (s *Subscription) closeLocked() {
	s.once.Do(func() {
		if set, ok := s.bus.subs[s.event]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(s.bus.subs, s.event)
			}
		}
		close(s.ch)
	})
}

// Subscribe registers interest in event. Subscribing to a closed bus returns
// an already-closed subscription.
func (b *Bus) Subscribe(event string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{
		bus:   b,
		event: event,
		ch:    make(chan Payload, b.buffer),
	}
	if b.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}

	set, ok := b.subs[event]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[event] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Publish sends payload to every subscriber of event. It never blocks.
func (b *Bus) Publish(event string, payload Payload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for sub := range b.subs[event] {
		for {
			select {
			case sub.ch <- payload:
			default:
				// Full: drop the oldest and retry. Holding b.mu keeps other
				// publishers out, so the retry will find room.
				select {
				case <-sub.ch:
					if b.OnDrop != nil {
						b.OnDrop(event)
					}
				default:
				}
				continue
			}
			break
		}
	}
}

// Close closes every subscription. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, set := range b.subs {
		for sub := range set {
			sub.closeLocked()
		}
	}
}
