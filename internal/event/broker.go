package event

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Broker fans auction events out to in-process subscribers. When backed by
// a Redis client it also relays every published event through Redis pub/sub,
// so events committed on one instance reach clients connected to another.
type Broker struct {
	mu          sync.Mutex
	subscribers map[string]map[chan Event]bool
	rdb         *redis.Client
}

// NewBroker creates a broker. rdb may be nil, in which case events are only
// delivered within this process.
func NewBroker(rdb *redis.Client) *Broker {
	return &Broker{
		subscribers: make(map[string]map[chan Event]bool),
		rdb:         rdb,
	}
}

// Subscribe registers a channel on a topic. The returned channel is buffered;
// a subscriber that stops draining it loses events rather than blocking the
// broker.
func (b *Broker) Subscribe(topic string) chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	if _, ok := b.subscribers[topic]; !ok {
		b.subscribers[topic] = make(map[chan Event]bool)
	}
	b.subscribers[topic][ch] = true
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from a topic and closes it.
func (b *Broker) Unsubscribe(topic string, ch chan Event) {
	b.mu.Lock()
	if subs, ok := b.subscribers[topic]; ok {
		if subs[ch] {
			delete(subs, ch)
			close(ch)
		}
		if len(subs) == 0 {
			delete(b.subscribers, topic)
		}
	}
	b.mu.Unlock()
}

// Publish delivers an event to every subscriber of its auction topic. With
// Redis configured the event takes the pub/sub round trip so all instances,
// including this one, deliver it from the relay loop.
func (b *Broker) Publish(ctx context.Context, ev Event) {
	if b.rdb == nil {
		b.fanout(ev)
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("failed to marshal event")
		return
	}

	if err = b.rdb.Publish(ctx, Topic(ev.AuctionID), payload).Err(); err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("failed to publish event to redis")
		// Degrade to local delivery so connected clients still hear it.
		b.fanout(ev)
	}
}

// Run relays events arriving over Redis pub/sub to local subscribers. It
// blocks until ctx is canceled. No-op without a Redis client.
func (b *Broker) Run(ctx context.Context) {
	if b.rdb == nil {
		return
	}

	sub := b.rdb.PSubscribe(ctx, "auction:*")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}

			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Err(err).Str("channel", msg.Channel).Msg("failed to decode relayed event")
				continue
			}
			b.fanout(ev)
		}
	}
}

func (b *Broker) fanout(ev Event) {
	topic := Topic(ev.AuctionID)

	b.mu.Lock()
	subs := make([]chan Event, 0, len(b.subscribers[topic]))
	for ch := range b.subscribers[topic] {
		subs = append(subs, ch)
	}
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			log.Warn().Str("topic", topic).Str("type", ev.Type).Msg("dropping event for slow subscriber")
		}
	}
}
