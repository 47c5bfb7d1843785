package events

import (
	"sync"
	"sync/atomic"

	v1 "github.com/tradesys/market-data-engine/internal/domain/marketdata/v1"
)

// Type tags an event with the record kind it carries.
type Type string

const (
	// TypeTicker is emitted after a ticker passes validation.
	TypeTicker Type = "ticker"
	// TypeCandle is emitted after a candle passes validation.
	TypeCandle Type = "candle"
	// TypeOrderBook is emitted after an order book passes validation.
	TypeOrderBook Type = "orderbook"
	// TypeTrade is emitted after a trade passes validation.
	TypeTrade Type = "trade"
	// TypeAggregatedCandle is emitted once per target timeframe update.
	TypeAggregatedCandle Type = "aggregatedCandle"
)

// Event is the tagged union delivered to subscribers. Exactly one payload
// field is set, matching Type.
type Event struct {
	Type      Type
	Exchange  string
	Candle    *v1.Candle
	Ticker    *v1.Ticker
	OrderBook *v1.OrderBook
	Trade     *v1.Trade
}

// Publisher is the producing side of the bus.
type Publisher interface {
	Publish(event Event)
}

// Subscription receives events for the types it registered.
type Subscription struct {
	id    int64
	ch    chan Event
	types map[Type]struct{}
}

// C returns the delivery channel for this subscription.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

func (s *Subscription) wants(eventType Type) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// Bus fans events out to subscribers over buffered channels. Delivery to
// a subscriber whose buffer is full is dropped rather than blocking the
// ingestion path.
type Bus struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]*Subscription
	buffer int

	dropped atomic.Int64
}

// NewBus creates a bus whose subscriber channels hold up to buffer events.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		subs:   make(map[int64]*Subscription),
		buffer: buffer,
	}
}

// Subscribe registers interest in the given event types. With no types
// the subscription receives everything.
func (b *Bus) Subscribe(types ...Type) *Subscription {
	typeSet := make(map[Type]struct{}, len(types))
	for _, eventType := range types {
		typeSet[eventType] = struct{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:    b.nextID,
		ch:    make(chan Event, b.buffer),
		types: typeSet,
	}
	b.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub.id]; !ok {
		return
	}
	delete(b.subs, sub.id)
	close(sub.ch)
}

// Publish delivers the event to every interested subscriber without
// blocking. Slow subscribers miss events.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !sub.wants(event.Type) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped reports how many deliveries were skipped due to full buffers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}
