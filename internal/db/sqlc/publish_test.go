package db

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPublishAllPreservesOrderAndFields(t *testing.T) {
	rec := event.NewRecorder()
	auctionID := uuid.New()
	now := time.Now()

	data, err := json.Marshal(map[string]string{"player_id": uuid.NewString()})
	require.NoError(t, err)

	rows := []AuctionEvent{
		{ID: uuid.New(), AuctionID: auctionID, Seq: 4, Type: event.TypeBidPlaced, Data: data, CreatedAt: now},
		{ID: uuid.New(), AuctionID: auctionID, Seq: 5, Type: event.TypePlayerSold, Data: data, CreatedAt: now.Add(time.Millisecond)},
	}
	PublishAll(context.Background(), rec, rows...)

	events := rec.Events()
	require.Len(t, events, 2)

	require.Equal(t, event.TypeBidPlaced, events[0].Type)
	require.Equal(t, int64(4), events[0].Seq)
	require.Equal(t, auctionID, events[0].AuctionID)
	require.Equal(t, json.RawMessage(data), events[0].Data)
	require.Equal(t, now, events[0].Timestamp)

	require.Equal(t, event.TypePlayerSold, events[1].Type)
	require.Equal(t, int64(5), events[1].Seq)
}

func TestPublishAllWithNoRows(t *testing.T) {
	rec := event.NewRecorder()
	PublishAll(context.Background(), rec)
	require.Empty(t, rec.Events())
}
