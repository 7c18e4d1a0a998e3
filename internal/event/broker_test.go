package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBrokerLocalFanout(t *testing.T) {
	broker := NewBroker(nil)
	auctionID := uuid.New()

	ch := broker.Subscribe(Topic(auctionID))
	defer broker.Unsubscribe(Topic(auctionID), ch)

	ev := Event{
		Type:      TypeBidPlaced,
		AuctionID: auctionID,
		Seq:       1,
		Timestamp: time.Now(),
	}
	broker.Publish(context.Background(), ev)

	select {
	case got := <-ch:
		require.Equal(t, TypeBidPlaced, got.Type)
		require.Equal(t, auctionID, got.AuctionID)
		require.Equal(t, int64(1), got.Seq)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBrokerTopicIsolation(t *testing.T) {
	broker := NewBroker(nil)
	auctionA := uuid.New()
	auctionB := uuid.New()

	chA := broker.Subscribe(Topic(auctionA))
	defer broker.Unsubscribe(Topic(auctionA), chA)

	broker.Publish(context.Background(), Event{Type: TypeAuctionStarted, AuctionID: auctionB})

	select {
	case ev := <-chA:
		t.Fatalf("subscriber received event for another auction: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	broker := NewBroker(nil)
	auctionID := uuid.New()

	ch := broker.Subscribe(Topic(auctionID))
	defer broker.Unsubscribe(Topic(auctionID), ch)

	// Fill the buffer past capacity without draining. Publish must not
	// block even once the channel is full.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			broker.Publish(context.Background(), Event{Type: TypeTimerSync, AuctionID: auctionID, Seq: int64(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	require.Len(t, ch, cap(ch))
}

func TestBrokerUnsubscribeClosesChannel(t *testing.T) {
	broker := NewBroker(nil)
	auctionID := uuid.New()

	ch := broker.Subscribe(Topic(auctionID))
	broker.Unsubscribe(Topic(auctionID), ch)

	_, open := <-ch
	require.False(t, open)

	// Publishing after the last unsubscribe must not panic.
	broker.Publish(context.Background(), Event{Type: TypeBidPlaced, AuctionID: auctionID})
}

func TestRecorderCollectsEvents(t *testing.T) {
	rec := new(Recorder)
	auctionID := uuid.New()

	rec.Publish(context.Background(), Event{Type: TypePlayerSold, AuctionID: auctionID})
	rec.Publish(context.Background(), Event{Type: TypePlayerChanged, AuctionID: auctionID})

	events := rec.Events()
	require.Len(t, events, 2)
	require.Equal(t, TypePlayerSold, events[0].Type)
	require.Equal(t, TypePlayerChanged, events[1].Type)
}
